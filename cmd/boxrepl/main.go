// Command boxrepl is an interactive console for the inspector's tree.
// Input lines are JavaScript evaluated against the session; lines starting
// with a colon are console commands (see :help).
package main

import (
	"flag"
	"os"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"boxscope/pkg/cli"
	"boxscope/pkg/script"
	"boxscope/pkg/session"
	"boxscope/pkg/style"
)

var version string

func main() {
	initDisplay()

	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	scriptFile := flag.String("script", "", "Script to run before going interactive")
	empty := flag.Bool("empty", false, "Start with a lone root instead of the sample tree")
	flag.Parse()
	if err := cli.SetupTracing(*tlevel); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	pterm.Info.Printfln("Welcome to boxscope %s", cli.Version(version))

	sess := session.New()
	if *empty {
		sess = session.NewEmpty(style.Template())
	}
	ctl := session.NewController(sess)
	if *scriptFile != "" {
		if err := cli.RunScriptFile(ctl, *scriptFile, os.Stdout); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
	}
	repl, err := readline.New("box > ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp := &Intp{
		repl: repl,
		ctl:  ctl,
		js:   script.New(ctl, repl.Stdout()),
	}
	pterm.Info.Println("Quit with <ctrl>D or :quit")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
