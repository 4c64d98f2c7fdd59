package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/heat-tracker/internal/export"
)

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the heats of a heat sheet to an Excel workbook",
		Long: `Write the paired heats to an .xlsx workbook.

Either parse a file directly or export a sheet that is already stored.

Example:
  h2h export ritten.pdf --out ritten.xlsx
  h2h export --sheet-id 3f6c... --out ritten.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			rawID, _ := cmd.Flags().GetString("sheet-id")
			ctx := cmd.Context()

			var (
				data []byte
				err  error
			)
			switch {
			case rawID != "" && len(args) > 0:
				return fmt.Errorf("pass either a file or --sheet-id, not both")
			case rawID != "":
				id, perr := uuid.Parse(rawID)
				if perr != nil {
					return fmt.Errorf("invalid --sheet-id: %w", perr)
				}
				db, sheets, oerr := a.openStore(ctx)
				if oerr != nil {
					return oerr
				}
				defer db.Close()
				data, err = export.NewService(sheets, a.logger).ExportSheetXLSX(ctx, id)
			case len(args) == 1:
				res, perr := a.parseFile(ctx, args[0])
				if perr != nil {
					return perr
				}
				data, err = export.WriteHeatsXLSX(res.Metadata, res.Heats)
			default:
				return fmt.Errorf("a file or --sheet-id is required")
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.logger.Info("export.write.ok", "out", out, "bytes", len(data))
			fmt.Fprintf(cmd.OutOrStdout(), "Geschreven: %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "Output .xlsx path")
	cmd.Flags().String("sheet-id", "", "Export a stored sheet instead of parsing a file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
