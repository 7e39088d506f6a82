package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"scored/pkg/types"
)

func newPredictCmd(f *flags) *cobra.Command {
	var (
		req              types.PredictRequest
		reading, writing float64
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict one math score from flags and print it as JSON",
		Example: `  scored predict --gender female --race-ethnicity "group B" \
    --parental-education "bachelor's degree" --lunch standard \
    --test-prep none --reading-score 72 --writing-score 74`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			log, closer := newLogger(cfg, cmd.ErrOrStderr())
			defer closer.Close()
			svc, err := newService(cfg, log)
			if err != nil {
				return err
			}
			req.ReadingScore, req.WritingScore = &reading, &writing
			resp, err := svc.Predict(cmd.Context(), req)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(resp)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&req.Gender, "gender", "", "gender")
	fl.StringVar(&req.RaceEthnicity, "race-ethnicity", "", "race/ethnicity")
	fl.StringVar(&req.ParentalEducation, "parental-education", "", "parental level of education")
	fl.StringVar(&req.Lunch, "lunch", "", "lunch")
	fl.StringVar(&req.TestPreparation, "test-prep", "", "test preparation course")
	fl.Float64Var(&reading, "reading-score", 70, "reading score")
	fl.Float64Var(&writing, "writing-score", 70, "writing score")
	return cmd
}
