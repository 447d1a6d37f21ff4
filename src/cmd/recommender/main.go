package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/optionsage/optionsage/src/models"
	"github.com/optionsage/optionsage/src/pricing"
	"github.com/optionsage/optionsage/src/services"
	"github.com/optionsage/optionsage/src/strategy"
	"github.com/optionsage/optionsage/src/utils"
)

type RunArgs struct {
	GoEnv      string
	Ticker     string
	ConfigPath string
	Export     bool
}

type RunResult struct {
	PredictedClose float64
	Recommendation models.StrategyRecommendation
	DataSource     string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/recommender/main.go --ticker AAPL",
	Short: "Run the prediction pipeline for a ticker and print the strategy recommendation",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		ticker, err := cmd.Flags().GetString("ticker")
		if err != nil {
			log.Fatalf("error getting ticker: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		export, err := cmd.Flags().GetBool("export")
		if err != nil {
			log.Fatalf("error getting export: %v", err)
		}

		result, err := Run(RunArgs{
			GoEnv:      goEnv,
			Ticker:     strings.ToUpper(ticker),
			ConfigPath: configPath,
			Export:     export,
		})

		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Printf("Predicted close: %.2f\n", result.PredictedClose)
		fmt.Printf("Strategy: %s (%s)\n", result.Recommendation.Name, result.Recommendation.Confidence)
		fmt.Printf("Execution: %s\n", result.Recommendation.Execution)
		fmt.Printf("Data source: %s\n", result.DataSource)
	},
}

func Run(args RunArgs) (RunResult, error) {
	projectDir, err := os.Getwd()
	if err != nil {
		log.Fatalf("error getting working directory: %v", err)
	}

	if err := utils.InitEnvironmentVariables(projectDir, args.GoEnv); err != nil {
		log.Warnf("error loading environment variables: %v", err)
	}

	alphaVantageKey := os.Getenv("ALPHA_VANTAGE_API_KEY")
	if alphaVantageKey == "" {
		log.Fatalf("missing ALPHA_VANTAGE_API_KEY environment variable")
	}

	polygonKey := os.Getenv("POLYGON_API_KEY")
	if polygonKey == "" {
		log.Fatalf("missing POLYGON_API_KEY environment variable")
	}

	expirationsURL := os.Getenv("TRADIER_EXPIRATIONS_URL")
	if expirationsURL == "" {
		log.Fatalf("missing TRADIER_EXPIRATIONS_URL environment variable")
	}

	chainURL := os.Getenv("TRADIER_CHAIN_URL")
	if chainURL == "" {
		log.Fatalf("missing TRADIER_CHAIN_URL environment variable")
	}

	tradierToken := os.Getenv("TRADIER_BEARER_TOKEN")
	if tradierToken == "" {
		log.Fatalf("missing TRADIER_BEARER_TOKEN environment variable")
	}

	modelServerURL := os.Getenv("MODEL_SERVER_URL")
	if modelServerURL == "" {
		log.Fatalf("missing MODEL_SERVER_URL environment variable")
	}

	cfg, err := utils.LoadAppConfig(args.ConfigPath)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: failed to load config: %w", err)
	}

	ctx := context.Background()
	symbol := models.StockSymbol(args.Ticker)

	resolver := services.NewHistoryResolver(
		services.NewAlphaVantageClient(alphaVantageKey),
		services.NewPolygonClient(polygonKey),
	)

	series, err := resolver.ResolveHistory(ctx, symbol, models.MediumWindow)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: failed to resolve history: %w", err)
	}

	chainClient := services.NewTradierChainClient(expirationsURL, chainURL, tradierToken)

	chain, err := chainClient.FetchNearest(ctx, symbol)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: failed to fetch option chain: %w", err)
	}

	solver := pricing.NewSolver(pricing.SolverConfig{
		InitialGuess:  cfg.Solver.InitialGuess,
		MaxIterations: cfg.Solver.MaxIterations,
		Tolerance:     cfg.Solver.Tolerance,
		VegaFloor:     cfg.Solver.VegaFloor,
		MinSigma:      cfg.Solver.MinSigma,
		MaxSigma:      cfg.Solver.MaxSigma,
	})

	enricher := services.NewEnricher(solver, cfg.RiskFreeRate)

	rows, err := enricher.Enrich(chain, series)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: failed to enrich chain: %w", err)
	}

	if args.Export {
		if _, err := services.ExportFeatureRows(cfg.ExportDir, symbol, series.Source, rows); err != nil {
			log.Errorf("Run: failed to export feature rows: %v", err)
		}
	}

	modelClient := strategy.NewRemoteModelClient(modelServerURL)
	registry := strategy.NewModelRegistry(modelClient)
	orchestrator := strategy.NewOrchestrator(registry, modelClient)

	predictedClose, recommendation, err := orchestrator.PredictAndRecommend(ctx, symbol, rows)
	if err != nil {
		return RunResult{}, fmt.Errorf("Run: failed to predict and recommend: %w", err)
	}

	return RunResult{
		PredictedClose: predictedClose,
		Recommendation: recommendation,
		DataSource:     fmt.Sprintf("%s (Price), Tradier (Options)", series.Source),
	}, nil
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in")
	runCmd.PersistentFlags().String("ticker", "", "The underlying ticker to analyze")
	runCmd.PersistentFlags().String("config", "", "Optional path to a yaml config file")
	runCmd.PersistentFlags().Bool("export", false, "Export enriched feature rows to csv")

	runCmd.MarkPersistentFlagRequired("ticker")

	runCmd.Execute()
}
