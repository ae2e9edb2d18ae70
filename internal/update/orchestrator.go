// Package update sequences the end-to-end update workflow and maps every
// terminal outcome to a stable exit code.
package update

import (
	"context"
	"errors"

	"github.com/npp-tools/npp-updater/internal/feed"
	"github.com/npp-tools/npp-updater/internal/logging"
	"github.com/npp-tools/npp-updater/internal/probe"
	"github.com/npp-tools/npp-updater/internal/version"
)

// Prober reads the locally installed version and architecture.
type Prober interface {
	Probe() (probe.Installed, error)
}

// Feed fetches the latest release from the remote feed.
type Feed interface {
	Latest(ctx context.Context) (feed.Release, error)
}

// Downloader streams an asset to local storage and returns its path.
type Downloader interface {
	Fetch(ctx context.Context, url string, arch probe.Arch) (string, error)
}

// Runner executes a downloaded installer and cleans up the artifact.
type Runner interface {
	Run(path string) error
}

// Outcome is a terminal workflow result. The values are the process exit
// codes and must not be renumbered.
type Outcome int

const (
	UpToDate       Outcome = 0
	Updated        Outcome = 1
	NotFound       Outcome = 2
	FetchFailed    Outcome = 3
	DownloadFailed Outcome = 4
	InstallFailed  Outcome = 5
)

func (o Outcome) String() string {
	switch o {
	case UpToDate:
		return "up-to-date"
	case Updated:
		return "updated"
	case NotFound:
		return "not-found"
	case FetchFailed:
		return "fetch-failed"
	case DownloadFailed:
		return "download-failed"
	case InstallFailed:
		return "install-failed"
	default:
		return "unknown"
	}
}

// ExitCode returns the documented process exit code for the outcome.
func (o Outcome) ExitCode() int { return int(o) }

// State identifies a stage of the workflow. The workflow is strictly
// linear; no state is revisited.
type State int

const (
	CheckingInstalled State = iota
	CheckingLatest
	Comparing
	Downloading
	Installing
)

func (s State) String() string {
	switch s {
	case CheckingInstalled:
		return "checking-installed"
	case CheckingLatest:
		return "checking-latest"
	case Comparing:
		return "comparing"
	case Downloading:
		return "downloading"
	case Installing:
		return "installing"
	default:
		return "unknown"
	}
}

// Plan carries the values threaded through one workflow run. It exists
// only for the duration of that run.
type Plan struct {
	CurrentVersion string
	LatestVersion  string
	Arch           probe.Arch
	SelectedAsset  feed.Asset
	ArtifactPath   string

	assets []feed.Asset
}

var log = logging.L("update")

// Orchestrator drives the update workflow over injected collaborators.
type Orchestrator struct {
	prober     Prober
	feed       Feed
	downloader Downloader
	runner     Runner
}

// New creates an Orchestrator over the given collaborators.
func New(prober Prober, f Feed, downloader Downloader, runner Runner) *Orchestrator {
	return &Orchestrator{
		prober:     prober,
		feed:       f,
		downloader: downloader,
		runner:     runner,
	}
}

// stageResult is the tagged result of one transition function: either
// the next state, or a terminal outcome.
type stageResult struct {
	next     State
	terminal Outcome
	done     bool
}

func advance(next State) stageResult  { return stageResult{next: next} }
func terminate(o Outcome) stageResult { return stageResult{terminal: o, done: true} }

// Run executes the full workflow and returns its terminal outcome.
func (o *Orchestrator) Run(ctx context.Context) Outcome {
	plan := &Plan{}
	state := CheckingInstalled

	for {
		var res stageResult
		switch state {
		case CheckingInstalled:
			res = o.checkInstalled(plan)
		case CheckingLatest:
			res = o.checkLatest(ctx, plan)
		case Comparing:
			res = o.compare(plan)
		case Downloading:
			res = o.download(ctx, plan)
		case Installing:
			res = o.install(plan)
		}

		if res.done {
			return res.terminal
		}
		state = res.next
	}
}

// CheckResult describes the findings of a check-only run.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	Arch            probe.Arch
	UpdateAvailable bool
}

// Check runs the probe, fetch, and compare stages without downloading or
// installing anything. The outcome is NotFound or FetchFailed on stage
// failure, UpToDate otherwise; availability is reported in the result.
func (o *Orchestrator) Check(ctx context.Context) (CheckResult, Outcome) {
	plan := &Plan{}

	if res := o.checkInstalled(plan); res.done {
		return CheckResult{}, res.terminal
	}
	if res := o.checkLatest(ctx, plan); res.done {
		return CheckResult{}, res.terminal
	}

	result := CheckResult{
		CurrentVersion: plan.CurrentVersion,
		LatestVersion:  plan.LatestVersion,
		Arch:           plan.Arch,
	}

	res := o.compare(plan)
	if res.done {
		if res.terminal != UpToDate {
			return CheckResult{}, res.terminal
		}
		return result, UpToDate
	}

	result.UpdateAvailable = true
	return result, UpToDate
}

func (o *Orchestrator) checkInstalled(plan *Plan) stageResult {
	inst, err := o.prober.Probe()
	if err != nil {
		if errors.Is(err, probe.ErrNotInstalled) {
			log.Info("application not installed", logging.KeyStage, CheckingInstalled.String())
			return terminate(NotFound)
		}
		log.Error("probe failed", logging.KeyStage, CheckingInstalled.String(), logging.KeyError, err)
		return terminate(NotFound)
	}

	plan.CurrentVersion = inst.Version
	plan.Arch = inst.Arch
	log.Info("found installation", "version", inst.Version, "arch", inst.Arch)
	return advance(CheckingLatest)
}

func (o *Orchestrator) checkLatest(ctx context.Context, plan *Plan) stageResult {
	release, err := o.feed.Latest(ctx)
	if err != nil {
		log.Error("fetching latest version failed", logging.KeyStage, CheckingLatest.String(), logging.KeyError, err)
		return terminate(FetchFailed)
	}

	plan.LatestVersion = release.Tag
	plan.assets = release.Assets
	return advance(Comparing)
}

func (o *Orchestrator) compare(plan *Plan) stageResult {
	result, err := version.Compare(plan.CurrentVersion, plan.LatestVersion)
	if err != nil {
		// Unusable version data is treated as a failed latest-version
		// retrieval, never a crash.
		log.Error("version comparison failed", logging.KeyStage, Comparing.String(), logging.KeyError, err)
		return terminate(FetchFailed)
	}

	switch result {
	case version.Less:
		log.Info("update available", "current", plan.CurrentVersion, "latest", plan.LatestVersion)
		return advance(Downloading)
	case version.Greater:
		// Installed build is ahead of the feed; reported as up to date.
		log.Warn("installed version is newer than feed", "current", plan.CurrentVersion, "latest", plan.LatestVersion)
		return terminate(UpToDate)
	default:
		log.Info("already up to date", "version", plan.CurrentVersion)
		return terminate(UpToDate)
	}
}

func (o *Orchestrator) download(ctx context.Context, plan *Plan) stageResult {
	asset, ok := feed.SelectAsset(plan.assets, plan.Arch)
	if !ok {
		log.Error("no suitable installer asset", logging.KeyStage, Downloading.String(), "arch", plan.Arch)
		return terminate(DownloadFailed)
	}
	plan.SelectedAsset = asset

	path, err := o.downloader.Fetch(ctx, asset.URL, plan.Arch)
	if err != nil {
		log.Error("download failed", logging.KeyStage, Downloading.String(), "asset", asset.Name, logging.KeyError, err)
		return terminate(DownloadFailed)
	}

	plan.ArtifactPath = path
	return advance(Installing)
}

func (o *Orchestrator) install(plan *Plan) stageResult {
	if err := o.runner.Run(plan.ArtifactPath); err != nil {
		log.Error("installation failed", logging.KeyStage, Installing.String(), logging.KeyError, err)
		return terminate(InstallFailed)
	}

	log.Info("update installed", "version", plan.LatestVersion)
	return terminate(Updated)
}
