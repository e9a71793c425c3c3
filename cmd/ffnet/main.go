// Package main provides the ffnet CLI.
//
// It builds a network, feeds it examples one at a time through a forward and
// a backward pass, and reports the results:
//
//	ffnet -topology "2 3 1" -data samples.csv -print-weights
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/born-ml/ffnet/internal/dataset"
	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/parallel"
	"github.com/born-ml/ffnet/internal/report"
	"github.com/born-ml/ffnet/internal/topology"
)

const version = "v0.0.1-dev"

type options struct {
	topology       topology.Topology
	dataPath       string
	examples       int
	seed           uint64
	bias           float64
	printWeights   bool
	printOutputs   bool
	printGradients bool
	parallel       bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("ffnet: ")

	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("ffnet %s\n", version)
		return
	}

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := run(opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func parseFlags(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("ffnet", flag.ContinueOnError)
	fs.SetOutput(output)

	topo := fs.String("topology", "2 3 1", "layer sizes, input layer first")
	var opts options
	fs.StringVar(&opts.dataPath, "data", "", "CSV file of inputs followed by targets (default: zero examples)")
	fs.IntVar(&opts.examples, "examples", 10, "maximum number of examples to process (0 = all)")
	fs.Uint64Var(&opts.seed, "seed", 0, "weight initialization seed (0 = build seed)")
	fs.Float64Var(&opts.bias, "bias", 1.0, "constant bias input (0 disables the bias)")
	fs.BoolVar(&opts.printWeights, "print-weights", false, "print the weights before training")
	fs.BoolVar(&opts.printOutputs, "print-outputs", false, "print node outputs of the last example")
	fs.BoolVar(&opts.printGradients, "print-gradients", false, "print node gradients of the last example")
	fs.BoolVar(&opts.parallel, "parallel", false, "compute nodes of large layers in parallel")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	t, err := topology.Parse(*topo)
	if err != nil {
		return options{}, err
	}
	opts.topology = t

	if opts.examples < 0 {
		return options{}, fmt.Errorf("examples must be non-negative, got %d", opts.examples)
	}
	return opts, nil
}

func run(opts options, w io.Writer) error {
	net, err := nn.New(opts.topology, networkConfig(opts))
	if err != nil {
		return err
	}

	examples, err := loadExamples(opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "topology: %s\n", opts.topology)
	fmt.Fprintf(w, "numWeights: %d\n", opts.topology.NumWeights())
	if opts.printWeights {
		if err := report.Weights(w, net); err != nil {
			return err
		}
	}

	for i, ex := range examples {
		outputs, err := net.Forward(ex.Input)
		if err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
		if _, err := net.Backward(ex.Target); err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
		loss, err := net.Loss()
		if err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
		output := outputs[len(outputs)-opts.topology.OutputSize():]
		if err := report.Example(w, i, ex.Input, ex.Target, output, loss); err != nil {
			return err
		}
	}

	if len(examples) == 0 {
		return nil
	}
	if opts.printOutputs {
		if err := report.Outputs(w, net); err != nil {
			return err
		}
	}
	if opts.printGradients {
		if err := report.Gradients(w, net); err != nil {
			return err
		}
	}
	return nil
}

func networkConfig(opts options) nn.Config {
	cfg := nn.Config{
		Seed:        opts.seed,
		Bias:        opts.bias,
		DisableBias: opts.bias == 0,
	}
	if opts.parallel {
		cfg.Parallel = parallel.DefaultConfig()
	}
	return cfg
}

func loadExamples(opts options) ([]dataset.Example, error) {
	if opts.dataPath == "" {
		n := opts.examples
		if n == 0 {
			n = 10
		}
		return dataset.Zeros(n, opts.topology), nil
	}

	examples, err := dataset.LoadFile(opts.dataPath, opts.topology)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", opts.dataPath, err)
	}
	if opts.examples > 0 && len(examples) > opts.examples {
		examples = examples[:opts.examples]
	}
	return examples, nil
}
