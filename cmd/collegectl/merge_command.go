package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/college-predictor-api/internal/bootstrap"
	"github.com/noah-isme/college-predictor-api/internal/models"
	"github.com/noah-isme/college-predictor-api/internal/repository"
	"github.com/noah-isme/college-predictor-api/internal/service"
	"github.com/noah-isme/college-predictor-api/pkg/config"
)

type dataFlags struct {
	colleges string
	status   string
	images   string
}

func (f *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.colleges, "colleges", "", "College registry CSV (defaults to COLLEGE_DATA_PATH)")
	cmd.Flags().StringVar(&f.status, "status", "", "Image status workbook or CSV (defaults to IMAGE_STATUS_PATH)")
	cmd.Flags().StringVar(&f.images, "images", "", "Image directory (defaults to IMAGES_DIR)")
}

func (f *dataFlags) apply(cfg config.DataConfig) config.DataConfig {
	if f.colleges != "" {
		cfg.CollegeSource = config.SourceCSV
		cfg.CollegeDataPath = f.colleges
	}
	if f.status != "" {
		cfg.ImageStatusPath = f.status
	}
	if f.images != "" {
		cfg.ImagesDir = f.images
	}
	return cfg
}

// loadDataset merges the configured sources once and returns the loaded service.
func loadDataset(cmd *cobra.Command, ctx *commandContext, flags *dataFlags) (*service.DatasetService, *service.Dataset, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logr, err := ctx.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	sources, release, err := bootstrap.NewSources(cmd.Context(), flags.apply(cfg.Data), cfg.Database, logr)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	datasets := service.NewDatasetService(sources.Colleges, sources.Statuses, sources.Images, nil, logr)
	dataset, err := datasets.Load(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return datasets, dataset, nil
}

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var flags dataFlags
	var out string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge the registry with image statuses and report mismatches",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, dataset, err := loadDataset(cmd, ctx, &flags)
			if err != nil {
				return err
			}
			if out != "" {
				if err := writeMerged(out, dataset.Colleges); err != nil {
					return err
				}
			}
			printReport(cmd.OutOrStdout(), len(dataset.Colleges), dataset.Report)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the merged dataset as CSV")
	return cmd
}

func writeMerged(path string, colleges []models.MergedCollege) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create merged csv: %w", err)
	}
	if err := repository.WriteMergedCSV(file, colleges); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func printReport(w io.Writer, rows int, report models.ReconciliationReport) {
	if len(report.Mismatches) > 0 {
		table := make([][]string, 0, len(report.Mismatches))
		for _, m := range report.Mismatches {
			table = append(table, []string{m.Name, m.Slug})
		}
		fmt.Fprintln(w, "Marked done but image missing")
		fmt.Fprintln(w, renderTable([]string{"College", "Slug"}, table, nil))
	}
	if len(report.Orphans) > 0 {
		table := make([][]string, 0, len(report.Orphans))
		for _, o := range report.Orphans {
			table = append(table, []string{o.Slug})
		}
		fmt.Fprintln(w, "Images matching no college")
		fmt.Fprintln(w, renderTable([]string{"Slug"}, table, nil))
	}
	fmt.Fprintf(w, "Colleges: %d  Mismatches: %d  Orphans: %d\n", rows, len(report.Mismatches), len(report.Orphans))
}
