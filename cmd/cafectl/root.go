package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/saniyaC164/BIPA/infrastructure/integrator/cafe/cafeclient"
	"github.com/saniyaC164/BIPA/internal/config"
	"github.com/saniyaC164/BIPA/internal/domain"
	"github.com/saniyaC164/BIPA/internal/usecases/assembling"
	"github.com/saniyaC164/BIPA/internal/usecases/presenting"
	"github.com/saniyaC164/BIPA/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cycleOptions struct {
	DateRange string
	StartDate string
	EndDate   string
	Category  string
	Cards     bool
}

var opts cycleOptions

var rootCmd = &cobra.Command{
	Use:   "cafectl",
	Short: "Executa um ciclo do dashboard do café e imprime o resultado",
	Long: `cafectl busca os dados na API analítica, completa os indicadores ausentes
e imprime o view-model do dashboard em JSON. Termina com código 1 se o ciclo falhar.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("erro ao carregar configuração: %w", err)
		}

		return runCycle(cmd.Context(), cafeclient.NewClient(cfg), cfg, opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().String("api-url", "", "URL base da API analítica (padrão CAFE_API_URL)")
	rootCmd.Flags().Duration("timeout", 0, "Timeout de cada requisição à API (padrão CAFE_API_TIMEOUT)")
	rootCmd.Flags().StringVar(&opts.DateRange, "range", string(domain.Range7Days), "Período: 7d, 30d, 90d ou custom")
	rootCmd.Flags().StringVar(&opts.StartDate, "start-date", "", "Início do período personalizado (AAAA-MM-DD)")
	rootCmd.Flags().StringVar(&opts.EndDate, "end-date", "", "Fim do período personalizado (AAAA-MM-DD)")
	rootCmd.Flags().StringVar(&opts.Category, "category", domain.CategoryAll, "Categoria do cardápio")
	rootCmd.Flags().BoolVar(&opts.Cards, "cards", false, "Imprime os indicadores formatados em vez do view-model")

	cobra.CheckErr(viper.BindPFlag("cafe_api_url", rootCmd.Flags().Lookup("api-url")))
	cobra.CheckErr(viper.BindPFlag("cafe_api_timeout", rootCmd.Flags().Lookup("timeout")))
}

// runCycle executa um único ciclo e escreve o resultado em out
func runCycle(ctx context.Context, client cafeclient.Client, cfg *config.Config, o cycleOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	filters := domain.FilterState{
		DateRange: domain.DateRange(o.DateRange),
		StartDate: o.StartDate,
		EndDate:   o.EndDate,
		Category:  o.Category,
	}

	service := assembling.NewService(client, cfg)
	snap, err := service.SetFilters(ctx, filters)
	if err != nil {
		return err
	}

	var result any = snap
	if o.Cards {
		result = presenting.Cards(snap.ViewModel)
	}

	_, err = fmt.Fprintln(out, utils.PrettyJson(result))
	return err
}

func Execute() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.SetLevel(logrus.WarnLevel)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
