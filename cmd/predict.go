package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vzahanych/rain-prediction-app/internal/config"
	"github.com/vzahanych/rain-prediction-app/internal/features"
	"github.com/vzahanych/rain-prediction-app/internal/service"
)

type predictOptions struct {
	modelPath string
	inputPath string
	sets      []string
}

func predictCmd() *cobra.Command {
	opts := &predictOptions{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the rain amount for one observation",
		Long: `Run one feature vector through the model and print the estimate.

Values come from a JSON object file (--input) and/or repeated --set name=value
flags; --set wins over the file. All nineteen features are required unless
features.zero_fill_missing is enabled.`,
		Example: `  rain predict --set lat=12.5 --set lon=77.6 ... --set vwnd=0.4
  rain predict --input observation.json --set slp=1009.2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.modelPath, "model", "m", "", "path to the model artifact (default: model.path from config)")
	cmd.Flags().StringVarP(&opts.inputPath, "input", "i", "", "JSON file mapping feature names to values")
	cmd.Flags().StringArrayVarP(&opts.sets, "set", "s", nil, "feature value as name=value, repeatable")

	return cmd
}

func runPredict(cmd *cobra.Command, opts *predictOptions) error {
	cfg := config.GetConfig()

	modelPath := opts.modelPath
	if modelPath == "" {
		modelPath = cfg.Model.Path
	}

	vector, err := readVector(opts.inputPath, opts.sets)
	if err != nil {
		return err
	}
	if cfg.Features.ZeroFillMissing {
		vector = features.ZeroFilled(vector)
	}

	forest, err := service.LoadModel(modelPath)
	if err != nil {
		return err
	}

	ctx, end := tele.StartSpan(cmd.Context(), "cli.predict")
	defer end()

	svc := service.NewRainService(forest, log.Logger, tele)
	result, err := svc.Predict(ctx, vector)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Predicted rain amount: %s\n\n", strconv.FormatFloat(result.Value, 'f', -1, 64))
	return writeInputTable(out, result.Input)
}

// readVector merges the optional JSON file with --set assignments.
func readVector(inputPath string, sets []string) (features.Vector, error) {
	vector := features.Vector{}

	if inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		if err := json.Unmarshal(data, &vector); err != nil {
			return nil, fmt.Errorf("parse input %s: %w", inputPath, err)
		}
	}

	for _, s := range sets {
		name, raw, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q, want name=value", s)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		vector[strings.TrimSpace(name)] = v
	}

	return vector, nil
}

func writeInputTable(w io.Writer, rows []features.Value) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FEATURE\tVALUE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, strconv.FormatFloat(r.Value, 'f', -1, 64))
	}
	return tw.Flush()
}
