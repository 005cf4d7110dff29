// Command rectindex loads a batch of keyed rectangles into an R*-tree and
// answers a batch of intersection queries against it.
//
//	rectindex [-c config.json] [-bulk] [-dot tree.dot] input.json
//
// The input document holds "rects" (with keys) and "queries". One line per
// query is printed, listing the sorted keys of all intersecting rects.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/peterstace/rstar"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var (
	log = logrus.New()

	configPath string
	dotPath    string
	bulk       bool
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
	flag.StringVar(&dotPath, "dot", "", "write the tree in Graphviz DOT format to this path")
	flag.BoolVar(&bulk, "bulk", false, "bulk load the rects instead of inserting them one by one")
}

func setupLogging(config *Config) {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: config.Development()})
}

func openInput() (io.ReadCloser, error) {
	if flag.NArg() == 0 || flag.Arg(0) == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(flag.Arg(0))
}

// consumeInput reads the input document from in and closes it.
func consumeInput(in io.ReadCloser) (*Input, error) {
	input, err := readInput(in)
	if cerr := in.Close(); cerr != nil {
		log.Debug("unable to close input: ", cerr)
	}
	return input, err
}

func buildTree(config *Config, input *Input) *rstar.RTree[string] {
	if bulk {
		return rstar.BulkLoad(config.MinChildren, config.MaxChildren, input.items())
	}
	tree := rstar.New[string](config.MinChildren, config.MaxChildren)
	for _, item := range input.items() {
		tree.Insert(item.Rect, item.Key)
	}
	return tree
}

func writeDot(tree *rstar.RTree[string]) {
	f, err := os.Create(dotPath)
	if err != nil {
		log.Fatal("unable to create DOT file: ", err)
	}
	defer f.Close()
	if err := tree.WriteDot(f); err != nil {
		log.Fatal("unable to write DOT file: ", err)
	}
	log.WithField("path", dotPath).Info("wrote tree structure")
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	config, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	setupLogging(config)
	log.WithFields(config.Fields()).Debug("config")

	in, err := openInput()
	if err != nil {
		log.Fatal("unable to open input: ", err)
	}
	input, err := consumeInput(in)
	if err != nil {
		log.Fatal(err)
	}

	tree := buildTree(config, input)
	if err := tree.Check(); err != nil {
		log.Fatal("index is corrupt: ", err)
	}
	log.WithFields(logrus.Fields{
		"keys":   tree.Len(),
		"height": tree.Height(),
		"bulk":   bulk,
	}).Info("index built")

	if dotPath != "" {
		writeDot(tree)
	}

	results, err := runQueries(mainCtx, rstar.Synchronized(tree), input.Queries, config.Workers)
	if err != nil {
		log.Fatal("queries aborted: ", err)
	}

	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	printResults(os.Stdout, input.Queries, results)
}
