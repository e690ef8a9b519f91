package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type ConfigType int

const (
	String ConfigType = iota
	Int
	Uint
	Int8
	Uint8
	Int32
	Uint32
	Int64
	Uint64
	Bool
)

// Def in this package are those common ones used by almost every where.
type Def struct {
	Type     ConfigType // default to string
	Key      string
	KeyShort string // only valid in command line arguments, leave empty if not used
	Default  any
	Desc     string
}

var (
	CLogLevel = Def{
		Type:    Uint8,
		Key:     "log.level",
		Default: uint8(zerolog.InfoLevel),
		Desc:    "zerolog level number",
	}
	CLogFile = Def{
		Key:     "log.file",
		Default: "stdout",
		Desc:    "semicolon separated log outputs: stdout, stderr or a file path",
	}
	CLogLocation = Def{
		Type:    Bool,
		Key:     "log.location",
		Default: false,
		Desc:    "log the caller location",
	}
)

var (
	CDebug = Def{
		Key:     "infoflow.debug",
		Default: "off",
		Desc:    "engine diagnostics: off, low, medium, high or omg",
	}
	CCache = Def{
		Type:    Bool,
		Key:     "infoflow.cache",
		Default: true,
		Desc:    "skip the store for registers known to be clean",
	}
	CRegisterBase = Def{
		Type:    Uint64,
		Key:     "infoflow.register-base",
		Default: uint64(0x7e00_0000_0000),
		Desc:    "fake address of the register file",
	}
	CEnvBase = Def{
		Type:    Uint64,
		Key:     "infoflow.env-base",
		Default: uint64(0x7f00_0000_0000),
		Desc:    "fake address of the emulator cpu state",
	}
)

var (
	CMongoURL = Def{
		Key:     "mongo.url",
		Default: "mongodb://localhost:27017",
	}
	CMongoDatabase = Def{
		Key:     "mongo.database",
		Default: "infoflow",
	}
)

var (
	CConcurrency = Def{
		Type:    Int,
		Key:     "concurrency",
		Default: 1,
	}
	CAlertDedupWindow = Def{
		Key:     "alerts.dedup-window",
		Default: "10s",
		Desc:    "drop repeated alerts raised within this window, 0 disables",
	}
)

var GlobalFlagDefs = []Def{
	CLogLevel,
	CLogFile,
	CLogLocation,

	CDebug,
	CCache,
	CRegisterBase,
	CEnvBase,

	CMongoURL,
	CMongoDatabase,

	CConcurrency,
	CAlertDedupWindow,
}

type DefGroup struct {
	Name string
	Defs map[string]Def

	flagSet *pflag.FlagSet
}

func NewDefGroup(name string, defs ...Def) *DefGroup {
	defGroup := DefGroup{Name: name, Defs: make(map[string]Def)}
	defGroup.Add(defs...)
	return &defGroup
}

func (g *DefGroup) Add(defs ...Def) {
	for _, def := range defs {
		g.Defs[def.Key] = def
	}
}

func (g *DefGroup) KeyOf(def Def) string {
	if g.Defs[def.Key] == def {
		return fmt.Sprintf("%s.%s", g.Name, def.Key)
	}
	panic(fmt.Sprintf("%s not found in group %s", def.Key, g.Name))
}

func (g *DefGroup) FlagSet() *pflag.FlagSet {
	if g.flagSet == nil {
		slice := make([]Def, 0, len(g.Defs))
		for _, def := range g.Defs {
			slice = append(slice, def)
		}
		g.flagSet = BuildFlagSet(g.Name, slice...)
	}
	return g.flagSet
}

func (g *DefGroup) BindToViper() {
	set := g.FlagSet()
	for k, def := range g.Defs {
		err := viper.BindPFlag(g.KeyOf(def), set.Lookup(k))
		if err != nil {
			panic(fmt.Errorf("failed to bind flag %s to viper: %w", k, err))
		}
	}
}

func loadFlags() {
	setupConfigs(GlobalFlagDefs...)
}

var GlobalFlagSet *pflag.FlagSet = BuildFlagSet(
	"infoflow",
	GlobalFlagDefs...,
)

// BuildFlagSet declares one flag per definition. Def.Default must hold the Go
// type matching Def.Type.
func BuildFlagSet(name string, defs ...Def) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	for _, def := range defs {
		// an empty shorthand declares a long flag only
		switch def.Type {
		case String:
			flagSet.StringP(def.Key, def.KeyShort, def.Default.(string), def.Desc)
		case Int:
			flagSet.IntP(def.Key, def.KeyShort, def.Default.(int), def.Desc)
		case Uint:
			flagSet.UintP(def.Key, def.KeyShort, def.Default.(uint), def.Desc)
		case Int8:
			flagSet.Int8P(def.Key, def.KeyShort, def.Default.(int8), def.Desc)
		case Uint8:
			flagSet.Uint8P(def.Key, def.KeyShort, def.Default.(uint8), def.Desc)
		case Int32:
			flagSet.Int32P(def.Key, def.KeyShort, def.Default.(int32), def.Desc)
		case Uint32:
			flagSet.Uint32P(def.Key, def.KeyShort, def.Default.(uint32), def.Desc)
		case Int64:
			flagSet.Int64P(def.Key, def.KeyShort, def.Default.(int64), def.Desc)
		case Uint64:
			flagSet.Uint64P(def.Key, def.KeyShort, def.Default.(uint64), def.Desc)
		case Bool:
			flagSet.BoolP(def.Key, def.KeyShort, def.Default.(bool), def.Desc)
		default:
			panic(fmt.Sprintf("config %s has unknown type %d", def.Key, def.Type))
		}
	}
	return flagSet
}

func setupConfigs(configDefs ...Def) {
	flagSet := BuildFlagSet("infoflow", configDefs...)
	for _, def := range configDefs {
		viper.SetDefault(def.Key, def.Default)
	}
	flagSet.ParseErrorsWhitelist.UnknownFlags = true
	flagSet.Usage = func() {}
	_ = flagSet.Parse(os.Args[1:])
	err := viper.BindPFlags(flagSet)
	if err != nil {
		panic(fmt.Errorf("failed to bind flags to viper: %w", err))
	}
}
