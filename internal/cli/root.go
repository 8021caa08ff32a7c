package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"smarty-chef/internal/core/cache"
	"smarty-chef/internal/core/recipe"
	"smarty-chef/internal/core/spoonacular"
	"smarty-chef/internal/infrastructure/config"
	"smarty-chef/internal/pkg/common"

	"github.com/spf13/cobra"
)

var (
	cliVersion   = "dev"
	cliBuildDate = "unknown"
	cliGitCommit = "unknown"
)

// SetVersion 設定建置資訊
func SetVersion(version, buildDate, gitCommit string) {
	cliVersion = version
	cliBuildDate = buildDate
	cliGitCommit = gitCommit
}

// Resolver 食譜解析服務
type Resolver interface {
	Resolve(ctx context.Context, q recipe.Query) (*recipe.Resolution, error)
}

// ResolverFactory 依設定建立解析服務與對應的釋放函式
type ResolverFactory func(cfg *config.Config) (Resolver, func(), error)

// RootCommand CLI 根命令
type RootCommand struct {
	cmd      *cobra.Command
	cfg      *config.Config
	out      io.Writer
	factory  ResolverFactory
	logLevel string
}

// NewRootCommand 創建根命令；factory 為 nil 時使用 Spoonacular 來源
func NewRootCommand(factory ResolverFactory) *RootCommand {
	if factory == nil {
		factory = defaultResolver
	}
	root := &RootCommand{
		out:     os.Stdout,
		factory: factory,
	}

	opts := &suggestOptions{}
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Smarty-Chef recipe suggestions",
		Long: `Suggest recipes from the ingredients you have.

Recipes come from Spoonacular when it is reachable; otherwise a
homemade recipe is generated from your ingredients.`,
		Example: `  suggest --ingredients chicken,rice
  suggest -i tofu -i spinach --diet vegan --allergies peanut --pretty`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: root.persistentPreRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(cmd, root, opts)
		},
	}
	bindSuggestFlags(cmd, opts)

	cmd.PersistentFlags().StringVar(&root.logLevel, "log-level", "error", "Log level written to stderr (debug, info, warn, error)")

	root.cmd = cmd
	cmd.AddCommand(NewVersionCommand(root))

	return root
}

func (r *RootCommand) persistentPreRunE(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	r.cfg = cfg

	if err := common.InitLoggerWithOutput(r.logLevel, cfg.Log.File, os.Stderr); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}

// SetOutput 設定結果輸出位置
func (r *RootCommand) SetOutput(w io.Writer) {
	r.out = w
	r.cmd.SetOut(w)
}

// Command 回傳 cobra 命令
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute 執行命令
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext 以 ctx 執行命令
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Execute 以預設設定執行 CLI，失敗時以非零狀態結束
func Execute() {
	if err := NewRootCommand(nil).Execute(); err != nil {
		common.Sync()
		os.Exit(1)
	}
	common.Sync()
}

func defaultResolver(cfg *config.Config) (Resolver, func(), error) {
	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		return nil, nil, fmt.Errorf("init cache: %w", err)
	}

	client := spoonacular.NewClient(cfg.Spoonacular, store, nil)
	release := func() {
		_ = client.Close()
		if store != nil {
			_ = store.Close()
		}
	}
	return recipe.NewService(client, cfg.Spoonacular.DetailLimit, nil), release, nil
}
