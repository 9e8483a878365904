package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"personnel-admin/config"
	historyclient "personnel-admin/lib/history-console/client"
	historystore "personnel-admin/lib/history-console/store"
	"personnel-admin/models"
)

type rootOptions struct {
	baseURL   string
	token     string
	tokenFile string
	kind      string
	employee  string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "historyctl",
		Short:         "Просмотр и ведение истории сотрудников: статусы, активы, места службы",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return errors.Wrap(err, "ошибка чтения .env")
			}
			config.InitConfig()
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.baseURL, "url", "", "адрес api (по умолчанию CONSOLE_BASE_URL)")
	flags.StringVar(&opts.token, "token", "", "токен доступа (по умолчанию CONSOLE_TOKEN)")
	flags.StringVar(&opts.tokenFile, "token-file", "", "файл с токеном доступа (по умолчанию CONSOLE_TOKEN_FILE)")
	flags.StringVarP(&opts.kind, "kind", "k", string(models.HistoryKindStatus), "вид истории: status, asset, station")
	flags.StringVarP(&opts.employee, "employee", "e", "", "ID сотрудника, для которого открыта история")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "подробный лог запросов")

	cmd.AddCommand(
		newKindsCmd(),
		newListCmd(opts),
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newTokenCmd(),
	)
	return cmd
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ошибка:", err)
		os.Exit(1)
	}
}

// session клиент и список истории одного вида
type session struct {
	client historyclient.Provider
	store  historystore.Provider
}

func (o *rootOptions) credentials() historyclient.CredentialProvider {
	conf := config.Conf.Console
	switch {
	case o.token != "":
		return historyclient.StaticToken(o.token)
	case o.tokenFile != "":
		return historyclient.TokenFile{Path: o.tokenFile}
	case conf.Token != "":
		return historyclient.StaticToken(conf.Token)
	case conf.TokenFile != "":
		return historyclient.TokenFile{Path: conf.TokenFile}
	}
	return historyclient.StaticToken("")
}

func (o *rootOptions) newSession() (*session, error) {
	kind, err := models.ParseHistoryKind(strings.TrimSpace(o.kind))
	if err != nil {
		return nil, err
	}
	conf := config.Conf.Console
	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = conf.BaseURL
	}
	client := historyclient.NewInstance(historyclient.Config{
		BaseURL:     baseURL,
		Timeout:     time.Duration(conf.TimeoutSec) * time.Second,
		Credentials: o.credentials(),
	})
	store := historystore.NewInstance(historystore.Config{
		Client:         client,
		Kind:           kind,
		EmployeeScope:  strings.TrimSpace(o.employee),
		ReconcileDelay: time.Duration(conf.ReconcileDelayMs) * time.Millisecond,
	})
	return &session{client: client, store: store}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// maxPageSize наибольший размер страницы, который отдает api
const maxPageSize = 100
