package main

import (
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/noah-isme/college-predictor-api/internal/dto"
	"github.com/noah-isme/college-predictor-api/internal/models"
	"github.com/noah-isme/college-predictor-api/internal/service"
	"github.com/noah-isme/college-predictor-api/pkg/format"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var flags dataFlags
	var query dto.SearchQuery

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List the colleges a rank and budget qualify for",
		RunE: func(cmd *cobra.Command, args []string) error {
			datasets, _, err := loadDataset(cmd, ctx, &flags)
			if err != nil {
				return err
			}
			logr, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			search := service.NewSearchService(datasets, nil, validator.New(), service.SearchConfig{}, logr)
			eval, err := search.Evaluate(cmd.Context(), query)
			if err != nil {
				return err
			}
			printResults(cmd.OutOrStdout(), eval)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Int64Var(&query.Rank, "rank", 0, "Candidate rank")
	cmd.Flags().Int64Var(&query.TuitionBudget, "tuition-budget", 2000000, "Tuition package budget in rupees")
	cmd.Flags().Int64Var(&query.OverallBudget, "overall-budget", 3000000, "Overall budget in rupees")
	cmd.Flags().StringSliceVar(&query.States, "state", nil, "Restrict results to these states")
	_ = cmd.MarkFlagRequired("rank")
	return cmd
}

func printResults(w io.Writer, eval *service.Evaluation) {
	rows := make([][]string, 0, len(eval.Results))
	for _, c := range eval.Results {
		rows = append(rows, resultRow(c))
	}
	if len(rows) > 0 {
		fmt.Fprintln(w, renderTable(
			[]string{"College", "State", "Tuition Package", "Grand Total", "Close Rank 2023", "Budget Status"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
		))
	}
	fmt.Fprintln(w, service.Summary(eval))
}

func resultRow(c models.ClassifiedCollege) []string {
	return []string{
		c.DisplayName(),
		c.State,
		format.INR(c.TuitionPackage),
		format.INR(c.GrandTotal),
		format.Int(c.ClosingRank),
		c.BudgetStatus.Label(),
	}
}
