package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/joseph-ayodele/heat-tracker/internal/common"
	"github.com/joseph-ayodele/heat-tracker/internal/entity"
	"github.com/joseph-ayodele/heat-tracker/internal/server"
)

func listCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored heat sheets, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			remote, _ := cmd.Flags().GetString("remote")
			ctx := cmd.Context()

			var sheets []*entity.Sheet
			if remote != "" {
				conn, err := grpc.NewClient(remote, grpc.WithTransportCredentials(insecure.NewCredentials()))
				if err != nil {
					return fmt.Errorf("connect %s: %w", remote, err)
				}
				defer conn.Close()
				ctx, cancel := common.WithTimeout(ctx, 10*time.Second)
				defer cancel()
				if sheets, err = server.NewClient(conn).ListSheets(ctx, limit); err != nil {
					return fmt.Errorf("remote list: %w", err)
				}
			} else {
				db, repo, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				defer db.Close()
				if sheets, err = repo.List(ctx, limit); err != nil {
					return err
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tAANGEMAAKT\tRITTEN\tSTATUS\tEVENEMENT\tBRON")
			for _, s := range sheets {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
					s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.HeatCount, s.Status,
					s.Metadata.Event+" "+s.Metadata.Distance, s.SourcePath)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of sheets to list")
	cmd.Flags().String("remote", "", "Address of an h2hd server to list from")
	return cmd
}
