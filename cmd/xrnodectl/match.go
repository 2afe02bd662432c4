package main

import (
	"fmt"
	"strings"

	"xrnode/internal/domain/matching"
	"xrnode/internal/domain/profile"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type matchOutput struct {
	Viewer    string             `json:"viewer"`
	Target    string             `json:"target"`
	Result    matching.Result    `json:"result"`
	Breakdown matching.Breakdown `json:"breakdown"`
}

func newMatchCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "match <viewer-id> <target-id>",
		Short: "Score one participant against another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine(v)
			if err != nil {
				return err
			}
			roster, err := loadProfiles(v)
			if err != nil {
				return err
			}

			viewer, err := findProfile(roster, args[0])
			if err != nil {
				return err
			}
			target, err := findProfile(roster, args[1])
			if err != nil {
				return err
			}

			out := matchOutput{
				Viewer:    viewer.ID,
				Target:    target.ID,
				Result:    engine.Compute(viewer, target),
				Breakdown: engine.Breakdown(viewer, target),
			}

			asJSON, err := wantJSON(v)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s -> %s: %d (%s)\n", viewer.Name, target.Name, out.Result.Score, out.Result.Level.Label())
			for _, r := range out.Result.Reasons {
				fmt.Fprintf(w, "  - %s\n", r)
			}
			bd := out.Breakdown
			fmt.Fprintf(w, "  skills=%.1f interests=%.1f role=%.1f experience=%.1f location=%.1f\n",
				bd.SkillScore, bd.InterestScore, bd.RoleScore, bd.ExperienceScore, bd.LocationScore)
			return nil
		},
	}
}

func findProfile(roster []profile.Profile, id string) (profile.Profile, error) {
	id = strings.TrimSpace(id)
	for _, p := range roster {
		if p.ID == id {
			return p, nil
		}
	}
	return profile.Profile{}, fmt.Errorf("participant %q not found", id)
}
