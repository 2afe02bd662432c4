package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"text/tabwriter"

	"xrnode/internal/repository"
	"xrnode/internal/seeder"
	"xrnode/internal/usecase"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDirectoryCommand(v *viper.Viper) *cobra.Command {
	var params usecase.DirectoryParams

	cmd := &cobra.Command{
		Use:   "directory",
		Short: "List every participant ranked for a viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := loadEngine(v)
			if err != nil {
				return err
			}
			roster, err := loadProfiles(v)
			if err != nil {
				return err
			}

			logger := log.New(io.Discard, "", 0)
			profiles := repository.NewMemoryParticipantRepository(roster)
			matcher := usecase.NewMatchUsecase(engine, profiles, nil, 0, nil, logger)
			dir := usecase.NewDirectoryUsecase(profiles, repository.NewMemoryConnectionRepository(), matcher, 0, nil, logger)

			out, err := dir.List(context.Background(), v.GetString(keyViewer), params)
			if err != nil {
				return err
			}

			asJSON, err := wantJSON(v)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return printDirectory(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().String(keyViewer, seeder.DefaultViewerID, "participant the directory is ranked for")
	_ = v.BindPFlag(keyViewer, cmd.Flags().Lookup(keyViewer))
	cmd.Flags().StringVarP(&params.Query, "query", "q", "", "free-text search")
	cmd.Flags().StringVar(&params.Filter, "filter", "all", "all, excellent, good or low")
	cmd.Flags().StringVar(&params.Sort, "sort", "match", "match, name or company")
	return cmd
}

func printDirectory(w io.Writer, d usecase.Directory) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOMPANY\tSCORE\tLEVEL")
	for _, e := range d.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", e.Profile.ID, e.Profile.Name, e.Profile.Company, e.Match.Score, e.Match.Level)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	s := d.Summary
	_, err := fmt.Fprintf(w, "\n%d participants: %d excellent, %d good, %d potential\n", s.Total, s.Excellent, s.Good, s.Potential)
	return err
}
