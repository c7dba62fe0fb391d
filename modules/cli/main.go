package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/felixge/fgprof"
	"github.com/felixge/fgtrace"
	"github.com/lkarlslund/logonhound/modules/ui"
	"github.com/lkarlslund/logonhound/modules/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	Root = &cobra.Command{
		Use:              "logonhound",
		Short:            version.VersionStringShort(),
		SilenceErrors:    true,
		SilenceUsage:     true,
		TraverseChildren: true,
	}

	loglevel = Root.PersistentFlags().String("loglevel", "info", "Console log level")

	logfile      = Root.PersistentFlags().String("logfile", "", "File to log to, {timestamp} is replaced with the current date")
	logfilelevel = Root.PersistentFlags().String("logfilelevel", "info", "Log file log level")
	logzerotime  = Root.PersistentFlags().Bool("logzerotime", false, "Logged timestamps start from zero when program launches")

	cpuprofile        = Root.PersistentFlags().Bool("cpuprofile", false, "Save CPU profile from start to end of processing in datapath")
	cpuprofiletimeout = Root.PersistentFlags().Int32("cpuprofiletimeout", 0, "Profiling timeout in seconds (0 means no timeout)")
	dofgtrace         = Root.PersistentFlags().Bool("fgtrace", false, "Save fgtrace from start to end of processing in datapath")
	dofgprof          = Root.PersistentFlags().Bool("fgprof", false, "Save fgprof profile from start to end of processing in datapath")

	// input files, configuration and the SID store are found here
	Datapath = Root.PersistentFlags().String("datapath", ".", "folder to read input data and configuration from")

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show logonhound version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Info().Msg(version.ProgramVersionShort())
			return nil
		},
	}

	// Used when the program is started without arguments
	OverrideArgs []string

	profilestoppers []func()
	profilewriters  sync.WaitGroup
	stopprofiles    sync.Once
)

func bindFlags(cmd *cobra.Command) {
	apply := func(f *pflag.Flag) {
		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && viper.IsSet(f.Name) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				sv.Replace(viper.GetStringSlice(f.Name))
			} else {
				f.Value.Set(viper.GetString(f.Name))
			}
		}
	}
	cmd.PersistentFlags().VisitAll(apply)
	cmd.Flags().VisitAll(apply)
	for _, subCommand := range cmd.Commands() {
		bindFlags(subCommand)
	}
}

func loadConfiguration(cmd *cobra.Command) {
	viper.SetEnvPrefix("LOGONHOUND")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	configfilename := filepath.Join(*Datapath, "configuration.yaml")
	viper.SetConfigFile(configfilename)
	if err := viper.ReadInConfig(); err == nil {
		ui.Info().Msgf("Using configuration file: %v", viper.ConfigFileUsed())
	} else {
		ui.Debug().Msgf("No settings loaded from %v: %v", configfilename, err.Error())
	}

	bindFlags(cmd)
}

// startProfile runs start now and its stopper when processing ends or the timeout hits
func startProfile(start func() (func() error, error)) error {
	stop, err := start()
	if err != nil {
		return err
	}
	profilewriters.Add(1)
	done := make(chan struct{})
	var once sync.Once
	stopper := func() {
		once.Do(func() {
			if err := stop(); err != nil {
				ui.Error().Msgf("Problem stopping profiler: %v", err)
			}
			close(done)
			profilewriters.Done()
		})
	}
	profilestoppers = append(profilestoppers, stopper)
	if *cpuprofiletimeout > 0 {
		go func() {
			select {
			case <-time.After(time.Second * time.Duration(*cpuprofiletimeout)):
				stopper()
			case <-done:
			}
		}()
	}
	return nil
}

func profilename(kind, extension string) string {
	return filepath.Join(*Datapath, "logonhound-"+kind+"-"+time.Now().Format("06010215040506")+extension)
}

func init() {
	cobra.OnInitialize(func() {
		loadConfiguration(Root)
	})

	Root.AddCommand(versionCmd)
	Root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		ui.Zerotime = *logzerotime

		ll, err := ui.LogLevelString(*loglevel)
		if err != nil {
			ui.Error().Msgf("Invalid log level: %v - use one of: %v", *loglevel, ui.LogLevelStrings())
		} else {
			ui.SetLoglevel(ll)
		}

		if *logfile != "" {
			*logfile = strings.Replace(*logfile, "{timestamp}", time.Now().Format(time.DateOnly), 1)

			ll, err = ui.LogLevelString(*logfilelevel)
			if err != nil {
				ui.Error().Msgf("Invalid log file log level: %v - use one of: %v", *logfilelevel, ui.LogLevelStrings())
			} else if err = ui.SetLogFile(*logfile, ll); err != nil {
				return err
			}
		} else {
			ui.SetLogFile("", ui.LevelInfo) // Tell logger to stop buffering early output
		}

		ui.Debug().Msg(version.VersionString())

		if *dofgprof {
			err := startProfile(func() (func() error, error) {
				f, err := os.Create(profilename("fgprof", ".pprof"))
				if err != nil {
					return nil, fmt.Errorf("could not create fgprof file: %v", err)
				}
				stop := fgprof.Start(f, fgprof.FormatPprof)
				return func() error {
					defer f.Close()
					return stop()
				}, nil
			})
			if err != nil {
				return err
			}
		}

		if *dofgtrace {
			err := startProfile(func() (func() error, error) {
				f, err := os.Create(profilename("fgtrace", ".json"))
				if err != nil {
					return nil, fmt.Errorf("could not create fgtrace file: %v", err)
				}
				trace := fgtrace.Config{Dst: f}.Trace()
				return trace.Stop, nil
			})
			if err != nil {
				return err
			}
		}

		if *cpuprofile {
			err := startProfile(func() (func() error, error) {
				f, err := os.Create(profilename("cpuprofile", ".pprof"))
				if err != nil {
					return nil, fmt.Errorf("could not set up CPU profiling: %v", err)
				}
				if err = pprof.StartCPUProfile(f); err != nil {
					f.Close()
					return nil, err
				}
				return func() error {
					pprof.StopCPUProfile()
					return f.Close()
				}, nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	}
	Root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		stopProfiles()
		return nil
	}
}

func stopProfiles() {
	stopprofiles.Do(func() {
		for _, stopper := range profilestoppers {
			stopper()
		}
		profilewriters.Wait()
	})
}

// argsWithDefault puts OverrideArgs in front of args that name no subcommand, so flags alone still run it
func argsWithDefault(args []string) []string {
	if len(OverrideArgs) == 0 {
		return args
	}
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return args
		}
	}
	cmd, _, err := Root.Find(args)
	if err != nil || cmd != Root {
		return args
	}
	return append(slices.Clone(OverrideArgs), args...)
}

func CliMainEntryPoint() error {
	Root.SetArgs(argsWithDefault(os.Args[1:]))

	err := Root.Execute()
	stopProfiles()

	if err == nil {
		ui.Debug().Msgf("Terminating successfully")
	}

	return err
}
