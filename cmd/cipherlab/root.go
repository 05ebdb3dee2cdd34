package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"github.com/vaultsandbox/cipherlab"
	"github.com/vaultsandbox/cipherlab/internal/config"
)

// app is the state shared by the commands of one run.
type app struct {
	cfg     *Config
	vip     *viper.Viper
	cfgFile string
	envFile string

	params *config.Params
	lab    *cipherlab.Lab
}

func newRootCmd(cfg *Config) *cobra.Command {
	a := &app{cfg: cfg, vip: viper.New()}
	config.SetDefaults(a.vip)

	root := &cobra.Command{
		Use:   "cipherlab",
		Short: "Textbook RSA and classical ciphers",
		Long: `cipherlab generates textbook RSA keys, encrypts text in fixed-width
blocks, signs files into ZIP bundles and runs the affine, Playfair, ADFGX
and ADFGVX ciphers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	d := cipherlab.DefaultOptions()
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "",
		"config file (default is $HOME/.cipherlab/config.yaml)")
	flags.StringVar(&a.envFile, "env", ".env",
		"dotenv file loaded before the environment is read")
	flags.BoolP("verbose", "v", false, "Verbose mode for debugging")
	flags.String("log", "", "Also write log output to this file")
	flags.String("variant", d.AlphabetVariant.String(), "ADFGX or ADFGVX")
	flags.Int("grid-size", 0, "Expected ADFGX/ADFGVX square size (0 derives it)")
	flags.Int("block-chars", d.BlockChars, "Characters per RSA text block")
	flags.Int("prime-bits", d.PrimeBits, "Size of each RSA prime in bits")
	flags.Int("witness-rounds", d.WitnessRounds, "Fermat witnesses per prime candidate")
	flags.Int("max-attempts", d.MaxAttempts, "Prime candidates drawn before giving up (0 is unbounded)")
	flags.String("exponent-search", d.ExponentSearch.String(), "Public exponent search direction from 65537 (up or down)")
	flags.Int("exponent-search-limit", d.ExponentSearchLimit, "Public exponent candidates tried")
	flags.String("playfair", d.PlayfairVariant.String(), "Playfair folding rule (J=I or W=V)")
	flags.String("digest", d.Digest.String(), "File digest (keccak256 or sha3-256)")
	flags.String("seed", "", "Seed for deterministic key generation")

	a.bindFlag(flags, config.KeyVerbose, "verbose")
	a.bindFlag(flags, config.KeyLog, "log")
	a.bindFlag(flags, config.KeyVariant, "variant")
	a.bindFlag(flags, config.KeyGridSize, "grid-size")
	a.bindFlag(flags, config.KeyBlockChars, "block-chars")
	a.bindFlag(flags, config.KeyPrimeBits, "prime-bits")
	a.bindFlag(flags, config.KeyWitnessRounds, "witness-rounds")
	a.bindFlag(flags, config.KeyMaxAttempts, "max-attempts")
	a.bindFlag(flags, config.KeyExponentSearch, "exponent-search")
	a.bindFlag(flags, config.KeyExponentSearchLimit, "exponent-search-limit")
	a.bindFlag(flags, config.KeyPlayfair, "playfair")
	a.bindFlag(flags, config.KeyDigest, "digest")
	a.bindFlag(flags, config.KeySeed, "seed")

	root.AddCommand(
		newKeysCmd(a),
		newRSACmd(a),
		newDigestCmd(a),
		newSignCmd(a),
		newVerifyCmd(a),
		newAffineCmd(a),
		newPlayfairCmd(a),
		newADFGVXCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) bindFlag(flags *pflag.FlagSet, key, flag string) {
	err := a.vip.BindPFlag(key, flags.Lookup(flag))
	handleBindingError(err, flag)
}

func handleBindingError(err error, flag string) {
	if err != nil {
		jww.FATAL.Panicf("Error on binding flag \"%s\":%+v", flag, err)
	}
}

// setup loads the environment and the config file, then builds the Lab every
// command runs against.
func (a *app) setup() error {
	if err := loadEnv(a.envFile); err != nil {
		return err
	}
	if err := a.initConfig(); err != nil {
		return err
	}
	if err := a.initLog(); err != nil {
		return err
	}
	if a.cfgFile != "" {
		jww.DEBUG.Printf("Using config file %s", a.cfgFile)
	}

	params, err := config.NewParams(a.vip)
	if err != nil {
		return err
	}
	opts, err := params.Options()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	lab, err := cipherlab.NewFromOptions(opts)
	if err != nil {
		return err
	}

	a.params = params
	a.lab = lab
	return nil
}

// loadEnv reads a dotenv file into the process environment. A missing file
// is not an error. Variables already set are left alone.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (a *app) initConfig() error {
	explicit := a.cfgFile != ""
	if !explicit {
		home, err := homedir.Dir()
		if err != nil {
			jww.DEBUG.Printf("No home directory, skipping default config: %v", err)
			return nil
		}
		a.cfgFile = filepath.Join(home, ".cipherlab", "config.yaml")
	}

	if _, err := os.Stat(a.cfgFile); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			a.cfgFile = ""
			return nil
		}
		return fmt.Errorf("invalid config file (%s): %w", a.cfgFile, err)
	}

	a.vip.SetConfigFile(a.cfgFile)
	if err := a.vip.ReadInConfig(); err != nil {
		return fmt.Errorf("unable to read config file (%s): %w", a.cfgFile, err)
	}
	return nil
}

func (a *app) initLog() error {
	jww.SetStdoutOutput(a.cfg.Stderr)
	if a.vip.GetBool(config.KeyVerbose) {
		jww.SetLogThreshold(jww.LevelDebug)
		jww.SetStdoutThreshold(jww.LevelDebug)
	} else {
		jww.SetLogThreshold(jww.LevelInfo)
		jww.SetStdoutThreshold(jww.LevelWarn)
	}

	logPath := a.vip.GetString(config.KeyLog)
	if logPath == "" {
		jww.SetLogOutput(io.Discard)
		return nil
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	jww.SetLogOutput(logFile)
	return nil
}

// readInput joins args with spaces, or reads all of stdin when there are
// none. A single trailing newline from stdin is dropped.
func (a *app) readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(a.cfg.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
