package convert

import (
	"io"
	"os"

	"github.com/lkarlslund/logonhound/modules/bloodhound"
	"github.com/lkarlslund/logonhound/modules/hostfilter"
	"github.com/lkarlslund/logonhound/modules/tables"
	"github.com/lkarlslund/logonhound/modules/ui"
	"github.com/pkg/errors"
)

// Inputs are the four tables a conversion needs
type Inputs struct {
	Sessions   tables.Loader
	Admins     tables.Loader
	RDP        tables.Loader
	Identities tables.Loader
}

type Options struct {
	Merger   tables.Merger
	Filter   *hostfilter.Filter
	Progress bool
}

func DefaultOptions() Options {
	return Options{
		Merger: tables.NewMerger(),
	}
}

func (in Inputs) load() (sessions, admins, rdp, identities *tables.Table, err error) {
	loaded := make([]*tables.Table, 4)
	for i, loader := range []tables.Loader{in.Sessions, in.Admins, in.RDP, in.Identities} {
		if loader == nil {
			return nil, nil, nil, nil, errors.New("missing input table")
		}
		ui.Debug().Msgf("Loading %v", loader.Name())
		if loaded[i], err = loader.Load(); err != nil {
			return nil, nil, nil, nil, err
		}
		ui.Debug().Msgf("Loaded %v rows from %v", loaded[i].Len(), loader.Name())
	}
	return loaded[0], loaded[1], loaded[2], loaded[3], nil
}

// Convert loads and joins the inputs and builds the computers file. Nothing is written anywhere.
func Convert(in Inputs, opts Options) (bloodhound.ComputersFile, error) {
	sessions, admins, rdp, identities, err := in.load()
	if err != nil {
		return bloodhound.ComputersFile{}, err
	}

	merged, err := opts.Merger.Merge(sessions, admins, rdp, identities)
	if err != nil {
		return bloodhound.ComputersFile{}, err
	}

	if !opts.Filter.Empty() {
		kept := merged[:0]
		for _, row := range merged {
			if opts.Filter.Match(row.Host) {
				kept = append(kept, row)
			}
		}
		ui.Info().Msgf("Host filter %v kept %v of %v hosts", opts.Filter, len(kept), len(merged))
		merged = kept
	}

	var pb interface {
		Add(int)
		Finish()
	}
	if opts.Progress {
		pb = ui.ProgressBar("Building computers", len(merged))
	}

	computers := make([]bloodhound.Computer, 0, len(merged))
	for _, row := range merged {
		n := tables.Normalize(row)
		computers = append(computers, bloodhound.NewComputer(n.HostName, n.HostSID, n.Domain, n.Sessions, n.Admins, n.RDP))
		if pb != nil {
			pb.Add(1)
		}
	}
	if pb != nil {
		pb.Finish()
	}

	cf := bloodhound.NewComputersFile(computers)
	ui.Info().Msgf("Built %v computers", cf.Meta.Count)
	return cf, nil
}

// Write encodes the whole document before touching the destination, - or blank means stdout
func Write(cf bloodhound.ComputersFile, path string) error {
	data, err := cf.Marshal()
	if err != nil {
		return err
	}
	if path == "" || path == "-" {
		return writeAll(os.Stdout, data)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %v", path)
	}
	ui.Info().Msgf("Wrote %v computers to %v", cf.Meta.Count, path)
	return nil
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return errors.Wrap(err, "writing output")
}
