package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag describes one entry in the shared flag registry. Commands pull their
// flags from here by key, so a flag that appears on several commands (say
// --namespace on both recall and status) keeps a single name, shorthand, and
// help string.
type Flag struct {
	// Name is the long flag name (e.g. "server-url").
	Name string

	// Shorthand is the one-letter short flag (e.g. "s"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the config key this flag maps to (e.g. "server_url").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet indexes Flag definitions by registry key.
type FlagSet map[string]Flag

// Registry keys for the flags below. Commands pass these to AddStringFlag,
// AddIntFlag, AddFloat64Flag, and BindRegisteredFlags.
const (
	FlagServerURL   = "server-url"
	FlagNamespace   = "namespace"
	FlagUser        = "user"
	FlagRecallLimit = "limit"
	FlagMinScore    = "min-score"
)

// Flags is the canonical registry shared by the augmem commands.
var Flags = FlagSet{
	FlagServerURL: {
		Name:        "server-url",
		ViperKey:    "server_url",
		Description: "Memory server URL",
	},
	FlagNamespace: {
		Name:        "namespace",
		Shorthand:   "n",
		ViperKey:    "namespace",
		Description: "Base memory namespace",
	},
	FlagUser: {
		Name:        "user",
		Shorthand:   "u",
		ViperKey:    "user_id",
		Description: "User ID attached to captured memories",
	},
	FlagRecallLimit: {
		Name:        "limit",
		Shorthand:   "k",
		ViperKey:    "recall_limit",
		Description: "Maximum number of memories to recall",
	},
	FlagMinScore: {
		Name:        "min-score",
		ViperKey:    "min_score",
		Description: "Minimum similarity score (0 to 1) for recalled memories",
	},
}

// AddStringFlag registers the string flag stored under key on cmd, with its
// default taken from the default config. Unknown keys are ignored.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	cmd.Flags().StringVarP(target, def.Name, def.Shorthand,
		flagDefaults().GetString(def.ViperKey), def.Description)
}

// AddIntFlag registers the int flag stored under key on cmd.
func AddIntFlag(cmd *cobra.Command, fs FlagSet, key string, target *int) {
	def, ok := fs[key]
	if !ok {
		return
	}

	cmd.Flags().IntVarP(target, def.Name, def.Shorthand,
		flagDefaults().GetInt(def.ViperKey), def.Description)
}

// AddFloat64Flag registers the float64 flag stored under key on cmd.
func AddFloat64Flag(cmd *cobra.Command, fs FlagSet, key string, target *float64) {
	def, ok := fs[key]
	if !ok {
		return
	}

	cmd.Flags().Float64VarP(target, def.Name, def.Shorthand,
		flagDefaults().GetFloat64(def.ViperKey), def.Description)
}

// BindRegisteredFlags binds the named registry flags to viper after they have
// been registered on cmd. Call it in PreRunE after InitViper so flag values
// slot into the precedence chain ahead of env vars and the config file.
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, keys []string) {
	for _, key := range keys {
		def, ok := fs[key]
		if !ok {
			continue
		}

		if f := cmd.Flags().Lookup(def.Name); f != nil {
			_ = v.BindPFlag(def.ViperKey, f)
		}
	}
}

// flagDefaults exposes the default config through viper so flag defaults and
// runtime defaults cannot disagree.
func flagDefaults() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	return v
}
