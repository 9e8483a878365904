package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"personnel-admin/config"
	authutils "personnel-admin/lib/utils/auth-utils"
	"personnel-admin/models"
)

func newTokenCmd() *cobra.Command {
	var (
		userID string
		name   string
		role   string
		expire time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Выпуск токена доступа к api (нужен JWT_SECRET сервера)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if expire <= 0 {
				expire = time.Duration(config.Conf.Auth.JWTExpireInSec) * time.Second
			}
			token, err := authutils.GetToken(config.Conf.Auth.JWTSecret, expire, userID, name, models.UserRole(role))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "ID пользователя (required)")
	cmd.Flags().StringVar(&name, "name", "", "имя пользователя, пишется автором записей")
	cmd.Flags().StringVar(&role, "role", string(models.HRRole), "роль: ADMIN, HR, VIEWER")
	cmd.Flags().DurationVar(&expire, "expire", 0, "срок действия (по умолчанию JWT_EXPIRE_IN_SEC)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
