package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type importOutput struct {
	File       string   `json:"file"`
	DurationMS int64    `json:"duration_ms"`
	Imported   int      `json:"imported"`
	Names      []string `json:"names"`
}

func newImportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "从 Excel 导入部门（按名称新增或更新，任一行失败则整体回滚）",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("打开文件失败: %w", err)
			}
			defer f.Close()

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			start := time.Now()
			depts, err := a.departments().ImportFromSpreadsheet(cmd.Context(), f)
			if err != nil {
				return err
			}

			out := importOutput{
				File:       file,
				DurationMS: time.Since(start).Milliseconds(),
				Imported:   len(depts),
				Names:      make([]string, 0, len(depts)),
			}
			for _, d := range depts {
				out.Names = append(out.Names, d.Name)
			}
			return writeJSON(out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "待导入的 .xlsx 文件 (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
