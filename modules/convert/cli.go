package convert

import (
	"github.com/lkarlslund/logonhound/modules/cli"
	"github.com/lkarlslund/logonhound/modules/hostfilter"
	"github.com/lkarlslund/logonhound/modules/persistence"
	"github.com/lkarlslund/logonhound/modules/tables"
	"github.com/lkarlslund/logonhound/modules/ui"
	"github.com/lkarlslund/logonhound/modules/util"
	"github.com/spf13/cobra"
)

var (
	Command = &cobra.Command{
		Use:   "convert [-options]",
		Short: "Converts session, admin and RDP exports into a BloodHound computers file",
		Args:  cobra.NoArgs,
	}

	sidsfile     = Command.Flags().String("sids", "computerSids.csv", "CSV with host names and computer SIDs")
	sessionsfile = Command.Flags().String("sessions", "sessions.csv", "CSV with logged on user SIDs per host")
	adminsfile   = Command.Flags().String("admins", "admins.csv", "CSV with local administrator SIDs per host")
	rdpfile      = Command.Flags().String("rdp", "rdp.csv", "CSV with remote desktop user SIDs per host")
	sidstore     = Command.Flags().Bool("sidstore", false, "Use the stored SID index (see 'sids import') instead of the SID CSV")

	hostcolumn     = Command.Flags().String("hostcolumn", tables.DefaultColumns().Host, "Column with the host name in all files")
	sidcolumn      = Command.Flags().String("sidcolumn", tables.DefaultColumns().SID, "Column with the computer SID")
	sessionscolumn = Command.Flags().String("sessionscolumn", tables.DefaultColumns().Sessions, "Column with session SIDs")
	adminscolumn   = Command.Flags().String("adminscolumn", tables.DefaultColumns().Admins, "Column with administrator SIDs")
	rdpcolumn      = Command.Flags().String("rdpcolumn", tables.DefaultColumns().RDP, "Column with remote desktop user SIDs")

	duplicatesids = Command.Flags().String("duplicatesids", tables.DuplicateError.String(), "What to do when a host is listed with different SIDs (error, first, last)")
	include       = Command.Flags().StringSlice("include", nil, "Only convert hosts matching these glob patterns")
	exclude       = Command.Flags().StringSlice("exclude", nil, "Skip hosts matching these glob patterns")
	progress      = Command.Flags().Bool("progress", true, "Show a progress bar while building computers")

	output = Command.Flags().String("output", "-", "File to write the computers JSON to, - is stdout")
)

func init() {
	cli.Root.AddCommand(Command)
	Command.RunE = Execute
}

func Execute(cmd *cobra.Command, args []string) error {
	opts := DefaultOptions()
	opts.Merger.Columns = tables.Columns{
		Host:     *hostcolumn,
		SID:      *sidcolumn,
		Sessions: *sessionscolumn,
		Admins:   *adminscolumn,
		RDP:      *rdpcolumn,
	}

	policy, err := tables.ParseDuplicatePolicy(*duplicatesids)
	if err != nil {
		return err
	}
	if policy != tables.DuplicateError {
		ui.Info().Msgf("Hosts with conflicting SIDs will use the %v one", policy)
	}
	opts.Merger.Duplicates = policy

	if opts.Filter, err = hostfilter.New(*include, *exclude); err != nil {
		return err
	}
	opts.Progress = *progress

	in := Inputs{
		Sessions:   tables.FileLoader{Path: util.ResolvePath(*cli.Datapath, *sessionsfile)},
		Admins:     tables.FileLoader{Path: util.ResolvePath(*cli.Datapath, *adminsfile)},
		RDP:        tables.FileLoader{Path: util.ResolvePath(*cli.Datapath, *rdpfile)},
		Identities: tables.FileLoader{Path: util.ResolvePath(*cli.Datapath, *sidsfile)},
	}
	if *sidstore {
		store, err := persistence.IdentityStore()
		if err != nil {
			return err
		}
		defer persistence.Close()
		in.Identities = persistence.StoreLoader{Store: store, Columns: opts.Merger.Columns}
	}

	cf, err := Convert(in, opts)
	if err != nil {
		return err
	}
	return Write(cf, *output)
}
