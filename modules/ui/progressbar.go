package ui

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gookit/color"
	"github.com/pterm/pterm"
)

type progressBar struct {
	Title          string
	Current, Total int64
	Started        time.Time
	Done           bool

	lastupdate time.Time
	updatemu   sync.Mutex
}

// ProgressBar starts a console progress bar. Redraws are throttled to once a second.
func ProgressBar(title string, max int) *progressBar {
	if max == 0 {
		max = 1 // avoid division by zero
	}

	return &progressBar{
		Title:   title,
		Total:   int64(max),
		Started: time.Now(),
	}
}

func (pb *progressBar) Add(i int) {
	atomic.AddInt64(&pb.Current, int64(i))
	pb.update()
}

func (pb *progressBar) Percent() float64 {
	current := atomic.LoadInt64(&pb.Current)
	if pb.Total <= 0 {
		return 0
	}
	return math.Min(float64(current)*100/float64(pb.Total), 100)
}

// Finish stops redrawing, removes the bar from the console and logs how long it took
func (pb *progressBar) Finish() {
	pb.updatemu.Lock()
	if pb.Done {
		pb.updatemu.Unlock()
		return
	}
	pb.Done = true
	pb.updatemu.Unlock()

	outputMutex.Lock()
	clearLine()
	outputMutex.Unlock()

	Debug().Msgf("%v: %v of %v done in %v", pb.Title, atomic.LoadInt64(&pb.Current), pb.Total, time.Since(pb.Started).Round(time.Millisecond))
}

func (pb *progressBar) update() {
	pb.updatemu.Lock()
	if pb.Done || time.Since(pb.lastupdate) < time.Second {
		pb.updatemu.Unlock()
		return
	}
	pb.lastupdate = time.Now()
	pb.updatemu.Unlock()

	outputMutex.Lock()
	defer outputMutex.Unlock()

	clearneeded = true

	current := atomic.LoadInt64(&pb.Current)
	percent := pb.Percent()

	before := pb.Title + " " + pterm.Gray("[") + pterm.LightWhite(current) + pterm.Gray("/") + pterm.LightWhite(pb.Total) + pterm.Gray("]") + " "
	after := " " + color.RGB(pterm.NewRGB(255, 0, 0).Fade(0, float32(pb.Total), float32(current), pterm.NewRGB(0, 255, 0)).GetValues()).
		Sprint(fmt.Sprintf("%.2f%%", percent)) +
		" | " + time.Since(pb.Started).Round(time.Second).String()

	barMaxLength := pterm.GetTerminalWidth() - len(pterm.RemoveColorFromString(before)) - len(pterm.RemoveColorFromString(after)) - 1
	if barMaxLength < 0 {
		barMaxLength = 0
	}
	barLength := int(math.Round(percent * float64(barMaxLength) / 100))

	bar := strings.Repeat("█", barLength) + strings.Repeat(" ", barMaxLength-barLength)

	pterm.Fprinto(console, before+bar+after)
}
