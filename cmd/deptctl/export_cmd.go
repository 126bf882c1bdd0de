package main

import (
	"github.com/spf13/cobra"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	"campus-lms/backend/internal/service"
)

func newExportCmd() *cobra.Command {
	var (
		out    string
		search string
		page   int
		size   int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "导出部门为 Excel（未指定 --size 时导出全部）",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			svc := a.departments()

			var depts []model.Department
			if cmd.Flags().Changed("size") {
				p, err := svc.List(ctx, search, page, size)
				if err != nil {
					return err
				}
				depts = p.Items
			} else {
				depts, err = svc.ListAll(ctx)
				if err != nil {
					return err
				}
			}

			buf, filename, err := svc.ExportToSpreadsheet(ctx, depts)
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			return writeFile(out, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "输出路径，\"-\" 表示标准输出（默认 departments.xlsx）")
	cmd.Flags().StringVar(&search, "search", "", "名称关键字（仅在指定 --size 时生效）")
	cmd.Flags().IntVar(&page, "page", 0, "页码，从 0 开始")
	cmd.Flags().IntVar(&size, "size", 20, "每页条数")
	return cmd
}

func newTemplateCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "生成部门导入模板",
		RunE: func(cmd *cobra.Command, args []string) error {
			// 模板生成不访问数据库
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			buf, filename, err := service.NewDepartmentService(&repository.Repository{}, cfg.Import, logger).Template(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			return writeFile(out, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "输出路径（默认 department_template.xlsx）")
	return cmd
}
