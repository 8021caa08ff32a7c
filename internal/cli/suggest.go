package cli

import (
	"errors"
	"fmt"
	"strings"

	"smarty-chef/internal/core/recipe"
	"smarty-chef/internal/pkg/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type suggestOptions struct {
	ingredients []string
	diet        string
	allergies   []string
	pretty      bool
}

// bindSuggestFlags 在根命令上註冊食譜查詢參數；結果輸出與 HTTP 回應相同的 JSON
func bindSuggestFlags(cmd *cobra.Command, opts *suggestOptions) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.ingredients, "ingredients", "i", nil, "Ingredients to cook with (comma separated or repeated)")
	flags.StringVarP(&opts.diet, "diet", "d", "", "Dietary preference, e.g. vegetarian or gluten-free")
	flags.StringSliceVarP(&opts.allergies, "allergies", "a", nil, "Allergens to exclude")
	flags.BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")
}

func runSuggest(cmd *cobra.Command, root *RootCommand, opts *suggestOptions) error {
	ingredients := make([]string, 0, len(opts.ingredients))
	for _, ing := range opts.ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}
	if len(ingredients) == 0 {
		return fmt.Errorf("%s: use --ingredients", common.ErrInvalidInput.Message)
	}

	resolver, release, err := root.factory(root.cfg)
	if err != nil {
		return err
	}
	if release != nil {
		defer release()
	}

	traceID := common.GenerateUUID()
	common.LogInfo("開始解析食譜", zap.String("trace_id", traceID), zap.Strings("ingredients", ingredients))

	res, err := resolver.Resolve(cmd.Context(), recipe.Query{
		Ingredients:       ingredients,
		DietaryPreference: opts.diet,
		Allergies:         strings.Join(opts.allergies, ","),
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			return fmt.Errorf("%s: use --ingredients", common.ErrInvalidInput.Message)
		}
		return err
	}

	return common.WriteJSON(root.out, res.Response(), opts.pretty)
}
