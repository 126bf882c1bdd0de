package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"campus-lms/backend/pkg/jwt"
	"campus-lms/backend/pkg/redis"
)

type tokenOutput struct {
	Subject   string    `json:"subject"`
	Role      string    `json:"role"`
	JTI       string    `json:"jti"`
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"token"`
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "签发或注销 API 访问令牌",
	}
	cmd.AddCommand(newTokenIssueCmd())
	cmd.AddCommand(newTokenRevokeCmd())
	return cmd
}

func newTokenIssueCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "为调用方签发 Access Token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != jwt.RoleAdmin && role != jwt.RoleViewer {
				return fmt.Errorf("无效的 --role %q，可选 admin 或 viewer", role)
			}

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			mgr := jwt.NewManager(&cfg.Auth)
			token, err := mgr.GenerateAccessToken(subject, role, ttl)
			if err != nil {
				return fmt.Errorf("签发 Token 失败: %w", err)
			}
			claims, err := mgr.ParseToken(token)
			if err != nil {
				return err
			}

			return writeJSON(tokenOutput{
				Subject:   claims.Subject,
				Role:      claims.Role,
				JTI:       claims.ID,
				ExpiresAt: claims.ExpiresAt.Time,
				Token:     token,
			})
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "调用方标识 (required)")
	cmd.Flags().StringVar(&role, "role", jwt.RoleViewer, "角色：admin | viewer")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "有效期（默认使用 auth.access_token_ttl）")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newTokenRevokeCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "将 Token 加入 Redis 黑名单直至其过期",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			claims, err := jwt.NewManager(&cfg.Auth).ParseToken(token)
			if err != nil {
				return fmt.Errorf("解析 Token 失败: %w", err)
			}

			rdb, err := redis.NewClient(&cfg.Redis, logger)
			if err != nil {
				return err
			}
			defer rdb.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			if err := rdb.BlacklistToken(ctx, claims.ID, claims.Remaining()); err != nil {
				return fmt.Errorf("写入黑名单失败: %w", err)
			}

			return writeJSON(map[string]any{"jti": claims.ID, "revoked": true})
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "待注销的 Access Token (required)")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
