package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/fitcheck/internal/ai"
	"github.com/spigell/fitcheck/internal/ai/gemini"
	"github.com/spigell/fitcheck/internal/fit"
	"github.com/spigell/fitcheck/internal/locale"
	"github.com/spigell/fitcheck/internal/logger"
	"github.com/spigell/fitcheck/internal/product"
	"github.com/spigell/fitcheck/internal/recommendation"
	"github.com/spigell/fitcheck/internal/secrets"
)

const (
	PromptTwoLines       = "Show recommendation"
	PromptOneLine        = "Show recommendation in one line"
	PromptReportByItems  = "Report by wardrobe items"
	PromptExcludeItem    = "Exclude a wardrobe item from comparison"
	PromptReportToFile   = "Dump report to file"
	PromptExit           = "Exit"
	PromptBack           = "back"
	defaultExcludeReason = "excluded manually"
)

var errExit = errors.New("exit requested")

var checkCmd = &cobra.Command{
	Use:   "check [product-id]",
	Short: "Check how a product fits compared with your wardrobe",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		check(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolP("one-line", "o", false, "render the recommendation in a single line")
	checkCmd.Flags().BoolP("auto", "y", false, "print the recommendation and exit without prompting")
	checkCmd.Flags().StringP("exclude-file", "e", "", "special file with wardrobe items to exclude. Default is unset.")

	viper.BindPFlag("wardrobe.exclude-file", checkCmd.Flags().Lookup("exclude-file"))
}

// check is the main command for the cli.
func check(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the fitcheck", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	source, err := buildSource(config, logger)
	if err != nil {
		logger.Fatal("preparing a product source",
			zap.Error(err),
			zap.String("hint", "set FITCHECK_TOKEN or FITCHECK_TOKEN_FILE environment variable or the 'shop.token-file' key in the configuration file"),
		)
	}

	productID := ""
	if len(args) > 0 {
		productID = strings.TrimSpace(args[0])
	}
	if productID == "" && !strings.EqualFold(config.Source, sourceFiles) {
		if productID, err = askProductID(); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}

	strs, err := locale.New(config.Language, config.LocaleFile)
	if err != nil {
		logger.Fatal("loading strings", zap.Error(err))
	}

	deps := checkDeps{
		Source:  source,
		Filters: buildFilters(config.Wardrobe, viper.GetString("wardrobe.exclude-file"), logger),
		Body:    bodyMeasurements(config.Body),
		Logger:  logger,
	}

	if config.AI != nil && config.AI.Enabled {
		advisor, err := newSizeAdvisor(ctx, config.AI, logger)
		if err != nil {
			logger.Warn("skipping ai size advisor", zap.Error(err))
		} else {
			deps.Advisor = advisor
		}
	}

	for _, st := range deps.Filters.Describe() {
		logger.Debug("wardrobe filter", zap.String("filter", st.Name), zap.Bool("enabled", st.Enabled), zap.String("reason", st.Reason))
	}

	result, err := evaluate(ctx, deps, productID)
	if err != nil {
		logger.Fatal("checking the product", zap.Error(err))
	}

	form := recommendation.TwoLines
	if oneLine, _ := cmd.Flags().GetBool("one-line"); oneLine {
		form = recommendation.OneLine
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, recommendation.Render(result.Message, strs, form))

	if auto, _ := cmd.Flags().GetBool("auto"); auto {
		return
	}

	prompt := promptui.Select{
		Label: "What next?",
		Items: []string{PromptTwoLines, PromptOneLine, PromptReportByItems, PromptExcludeItem, PromptReportToFile, PromptExit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		next, err := handleAction(ctx, action, out, deps, strs, result, productID)
		if err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
		result = next
	}
}

func handleAction(ctx context.Context, action string, out io.Writer, deps checkDeps, strs *locale.Strings, result *outcome, productID string) (*outcome, error) {
	switch action {
	case PromptTwoLines:
		fmt.Fprintln(out, recommendation.Render(result.Message, strs, recommendation.TwoLines))
		return result, nil
	case PromptOneLine:
		fmt.Fprintln(out, recommendation.Render(result.Message, strs, recommendation.OneLine))
		return result, nil
	case PromptReportByItems:
		pretty, _ := json.MarshalIndent(result.Report(), "", "  ")
		deps.Logger.Info(string(pretty), zap.Int("compared items", len(result.Scores)))
		return result, nil
	case PromptExcludeItem:
		excluded, err := excludeItem(deps.Logger, result.Scores)
		if err != nil || !excluded {
			return result, err
		}
		// Filters read the exclude file on every run, so checking again drops the item.
		return evaluate(ctx, deps, productID)
	case PromptReportToFile:
		filename, err := result.Report().DumpToTmpFile()
		if err != nil {
			return result, fmt.Errorf("dump report to file: %w", err)
		}
		deps.Logger.Info("dumping report to file", zap.String("filename", filename))
		return result, nil
	case PromptExit:
		deps.Logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return result, errExit
	default:
		return result, fmt.Errorf("invalid action: %s", action)
	}
}

func excludeItem(logger *zap.Logger, scores []fit.ItemScore) (bool, error) {
	excludeFile := strings.TrimSpace(viper.GetString("wardrobe.exclude-file"))
	if excludeFile == "" {
		logger.Warn("exclude file is not configured", zap.String("hint", "set wardrobe.exclude-file or pass --exclude-file"))
		return false, nil
	}

	items := make([]string, 0, len(scores)+1)
	for _, s := range scores {
		items = append(items, fmt.Sprintf("%s %s / %s / %.1f%%", s.Item.ID, s.Item.Name, s.UserSize.Name, fit.Percent(s.Result.Score)))
	}

	itemPrompt := promptui.Select{
		Label: "Choose a wardrobe item and press ENTER",
		Items: append(items, PromptBack),
	}

	idx, selected, err := itemPrompt.Run()
	if err != nil {
		return false, err
	}
	if selected == PromptBack {
		return false, nil
	}

	excluded, err := product.GetExcludedItemsFromFile(excludeFile)
	if errors.Is(err, os.ErrNotExist) {
		excluded, err = &product.ExcludedItems{}, nil
	}
	if err != nil {
		return false, err
	}

	item := scores[idx].Item
	if !excluded.Append(item.ToExcluded(defaultExcludeReason)) {
		logger.Info("wardrobe item is already excluded", zap.String("item_id", item.ID))
		return false, nil
	}

	if err := excluded.ToFile(excludeFile); err != nil {
		return false, err
	}

	logger.Info("appended to exclude file", zap.String("filename", excludeFile), zap.String("item_id", item.ID))
	return true, nil
}

func askProductID() (string, error) {
	p := promptui.Prompt{
		Label: "Product id",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("product id is required")
			}
			return nil
		},
	}

	id, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(id), nil
}

func resolveToken(cfg *ShopConfig) (string, error) {
	if cfg == nil {
		return "", errors.New("shop config is required")
	}

	tokenFile := strings.TrimSpace(cfg.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("shop.token-file"))
	}

	return secrets.Load(secrets.Source{
		Name:  "shop token",
		File:  tokenFile,
		Env:   "FITCHECK_TOKEN",
		Value: cfg.Token,
	})
}

func newSizeAdvisor(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.SizeAdvisor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, cfg.Gemini.MaxLogLength, logger.With(zap.String("provider", "gemini"))), nil
}
