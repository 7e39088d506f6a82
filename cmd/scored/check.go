package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   "Load the artifacts and print a summary",
		Example: "  scored check --model artifacts/model.json --encoders artifacts/encoders.json",
		Args:    cobra.NoArgs,
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
			loadErr := svc.Warm(cmd.Context())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(svc.Status()); err != nil {
				return err
			}
			if loadErr != nil {
				return fmt.Errorf("artifacts not usable: %w", loadErr)
			}
			return nil
		},
	}
}
