/*

Raxlog extracts results from raxml-ng log files and computes
Robinson-Foulds distances of tree sets using raxml-ng.

Print ML search log-likelihoods ordered by the tree number:

	raxlog llh run.raxml.log

Compute RF distances for a tree set:

	raxlog --raxml /opt/bin/raxml-ng rfdist run.raxml.mlTrees

Every command can write its result as JSON:

	raxlog --json msa.json msa run.raxml.log

To see all the commands run:

	raxlog --help

*/
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/op/go-logging"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/amkozlov/raxng-benchmark/raxml"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("raxlog")
var formatter = logging.MustStringFormatter(`%{message}`)

// command-line options
var (
	app = kingpin.New("raxlog", "raxml-ng log parser").Version(version)

	raxmlBinary = app.Flag("raxml", "raxml-ng binary name or full path").
			Envar("RAXMLNG").Default(raxml.DefaultBinary).String()
	outLogF  = app.Flag("log", "write log to a file").String()
	jsonF    = app.Flag("json", "write json output to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")

	llhCmd     = app.Command("llh", "ML tree search log-likelihoods ordered by tree number")
	llhLog     = llhCmd.Arg("log", "raxml-ng log file").Required().String()
	llhSummary = llhCmd.Flag("summary", "print best, worst and mean only").Bool()

	bsllhCmd     = app.Command("bsllh", "bootstrap tree log-likelihoods ordered by tree number")
	bsllhLog     = bsllhCmd.Arg("log", "raxml-ng log file").Required().String()
	bsllhSummary = bsllhCmd.Flag("summary", "print best, worst and mean only").Bool()

	bestCmd = app.Command("best", "final log-likelihood of the best ML tree")
	bestLog = bestCmd.Arg("log", "raxml-ng log file").Required().String()

	timeCmd = app.Command("time", "elapsed time in seconds (total with restarts)")
	timeLog = timeCmd.Arg("log", "raxml-ng log file").Required().String()

	icCmd = app.Command("ic", "AIC, AICc and BIC scores")
	icLog = icCmd.Arg("log", "raxml-ng log file").Required().String()

	difficultyCmd = app.Command("difficulty", "predicted difficulty (pythia score)")
	difficultyLog = difficultyCmd.Arg("log", "raxml-ng log file").Required().String()

	msaCmd = app.Command("msa", "number of taxa, sites, patterns and partitions")
	msaLog = msaCmd.Arg("log", "raxml-ng log file").Required().String()

	supportsCmd   = app.Command("supports", "branch supports of the first tree in a support file")
	supportsFile  = supportsCmd.Arg("tree", "support tree file (e.g. .raxml.support)").Required().String()
	supportsCheck = supportsCmd.Flag("check", "compare with supports of the parsed tree").Bool()

	rfdistCmd   = app.Command("rfdist", "RF distances of a tree set computed by raxml-ng")
	rfdistTrees = rfdistCmd.Arg("trees", "tree set file, one newick tree per line").Required().String()
	rfdistTmp   = rfdistCmd.Flag("tmpdir", "directory for raxml-ng temporary files").String()

	plotCmd = app.Command("plot", "plot log-likelihoods by tree number")
	plotLog = plotCmd.Arg("log", "raxml-ng log file").Required().String()
	plotOut = plotCmd.Flag("out", "output image (png, svg or pdf)").Default("llh.png").String()
)

// saveJSON writes the result as json if requested.
func saveJSON(result interface{}) {
	if *jsonF == "" {
		return
	}
	j, err := json.Marshal(result)
	if err != nil {
		log.Error(err)
		return
	}
	log.Debug(string(j))
	f, err := os.Create(*jsonF)
	if err != nil {
		log.Error("Error creating json output file:", err)
		return
	}
	defer f.Close()
	if _, err := f.Write(j); err != nil {
		log.Error("Error writing json output file:", err)
	}
}

// setupLogging sets the backend and the level of all the loggers.
func setupLogging() (closeLog func()) {
	logging.SetFormatter(formatter)

	closeLog = func() {}
	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		closeLog = func() { f.Close() }
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLevel(level, "raxlog")
	logging.SetLevel(level, "raxml")
	logging.SetLevel(level, "tree")
	return
}

// logFailure logs the error of a command before the log file is closed.
func logFailure(err error, closeLog func()) {
	log.Error(err)
	closeLog()
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	closeLog := setupLogging()
	defer closeLog()

	log.Info(version)
	log.Info("Command line:", os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		result interface{}
		err    error
	)

	switch command {
	case llhCmd.FullCommand():
		result, err = likelihoods(raxml.SearchSamples, *llhLog, *llhSummary)
	case bsllhCmd.FullCommand():
		result, err = likelihoods(raxml.BootstrapSamples, *bsllhLog, *bsllhSummary)
	case bestCmd.FullCommand():
		result, err = best(*bestLog)
	case timeCmd.FullCommand():
		result, err = elapsed(*timeLog)
	case icCmd.FullCommand():
		result, err = icScores(*icLog)
	case difficultyCmd.FullCommand():
		result, err = difficulty(*difficultyLog)
	case msaCmd.FullCommand():
		result, err = msa(*msaLog)
	case supportsCmd.FullCommand():
		result, err = supports(*supportsFile, *supportsCheck)
	case rfdistCmd.FullCommand():
		result, err = rfdist(ctx, *raxmlBinary, *rfdistTrees, *rfdistTmp)
	case plotCmd.FullCommand():
		result, err = plotLikelihoods(*plotLog, *plotOut)
	}

	if err != nil {
		stop()
		logFailure(err, closeLog)
		os.Exit(1)
	}

	saveJSON(result)
}
