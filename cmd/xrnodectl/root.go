package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"xrnode/internal/domain/matching"
	"xrnode/internal/domain/profile"
	"xrnode/internal/seeder"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyProfiles    = "profiles"
	keyMatchConfig = "match_config"
	keyOutput      = "output"
	keyViewer      = "viewer"
)

// NewRootCommand wires the offline tooling: scoring against a profile set and
// managing the participants database.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "xrnodectl",
		Short:         "XR NODE matchmaking and database tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfigFile(v)
		},
	}

	root.PersistentFlags().String(keyProfiles, "", "JSON file with an array of profiles (default: built-in event roster)")
	root.PersistentFlags().String(keyMatchConfig, "", "YAML file overriding matching weights")
	root.PersistentFlags().StringP(keyOutput, "o", "text", "output format: text or json")
	_ = v.BindPFlag(keyProfiles, root.PersistentFlags().Lookup(keyProfiles))
	_ = v.BindPFlag(keyMatchConfig, root.PersistentFlags().Lookup(keyMatchConfig))
	_ = v.BindPFlag(keyOutput, root.PersistentFlags().Lookup(keyOutput))

	v.SetEnvPrefix("XRNODE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindDatabaseEnv(v)

	root.AddCommand(
		newMatchCommand(v),
		newDirectoryCommand(v),
		newMigrateCommand(v),
		newSeedCommand(v),
	)
	return root
}

func loadConfigFile(v *viper.Viper) error {
	v.SetConfigName("xrnodectl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/xrnode")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func loadEngine(v *viper.Viper) (*matching.Engine, error) {
	path := v.GetString(keyMatchConfig)
	if path == "" {
		return matching.NewEngine(matching.DefaultConfig()), nil
	}
	cfg, err := matching.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return matching.NewEngine(cfg), nil
}

// loadProfiles reads the roster from --profiles, validating every entry, or
// falls back to the built-in event roster.
func loadProfiles(v *viper.Viper) ([]profile.Profile, error) {
	path := v.GetString(keyProfiles)
	if path == "" {
		return seeder.Profiles(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}

	out := make([]profile.Profile, 0, len(docs))
	for i, doc := range docs {
		p, err := profile.Decode(doc)
		if err != nil {
			return nil, fmt.Errorf("profile #%d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func wantJSON(v *viper.Viper) (bool, error) {
	switch strings.ToLower(v.GetString(keyOutput)) {
	case "", "text":
		return false, nil
	case "json":
		return true, nil
	default:
		return false, fmt.Errorf("unknown output format %q", v.GetString(keyOutput))
	}
}
