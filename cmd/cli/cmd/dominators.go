package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowdom/perf-analysis/internal/dominators"
	"github.com/flowdom/perf-analysis/internal/repository"
	"github.com/flowdom/perf-analysis/pkg/config"
	apperrors "github.com/flowdom/perf-analysis/pkg/errors"
)

var (
	domEdgesFile     string
	domParentsFile   string
	domPostorderFile string
	domPreorderFile  string
	domRoot          int
	domFormat        string
	domPersist       bool
	domConfigPath    string
)

// dominatorsCmd represents the dominators command.
var dominatorsCmd = &cobra.Command{
	Use:   "dominators",
	Short: "Compute the immediate dominator tree of a flow graph",
	Long: `Compute the immediate dominator tree of a rooted flow graph using the
disjoint-set-union based GD2 algorithm.

The graph is supplied as three JSON documents: the edge list, a parent map
describing a spanning tree rooted at --root, and a postorder numbering of
that tree. A preorder numbering is optional but, when supplied, is checked
for consistency with the parent tree as well.`,
	RunE: runDominators,
}

func init() {
	rootCmd.AddCommand(dominatorsCmd)

	binName := BinName()
	dominatorsCmd.Example = fmt.Sprintf(`  # Compute dominators from JSON inputs, printing a textual listing
  %s dominators --edges edges.json --parents parents.json --postorder postorder.json

  # Emit JSON instead, and persist a run summary to the database
  %s dominators --edges edges.json --parents parents.json --postorder postorder.json --format json --persist`,
		binName, binName)

	dominatorsCmd.Flags().StringVar(&domEdgesFile, "edges", "", "JSON file containing the graph's edge list (required)")
	dominatorsCmd.Flags().StringVar(&domParentsFile, "parents", "", "JSON file containing the spanning-tree parent map (required)")
	dominatorsCmd.Flags().StringVar(&domPostorderFile, "postorder", "", "JSON file containing a postorder numbering of the spanning tree (required)")
	dominatorsCmd.Flags().StringVar(&domPreorderFile, "preorder", "", "JSON file containing a preorder numbering of the spanning tree (optional)")
	dominatorsCmd.Flags().IntVar(&domRoot, "root", -1, "Root node id (inferred from --parents if omitted)")
	dominatorsCmd.Flags().StringVar(&domFormat, "format", "", "Output format: text, json, or dimacs (defaults to the configured dominators.default_format, or text)")
	dominatorsCmd.Flags().BoolVar(&domPersist, "persist", false, "Persist a summary of this run to the configured database")
	dominatorsCmd.Flags().StringVar(&domConfigPath, "config", "", "Path to configuration file (used with --persist)")

	dominatorsCmd.MarkFlagRequired("edges")
	dominatorsCmd.MarkFlagRequired("parents")
	dominatorsCmd.MarkFlagRequired("postorder")
}

func runDominators(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	cfg, err := config.Load(domConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	format := domFormat
	if format == "" {
		format = cfg.Dominators.DefaultFormat
	}

	edges, err := loadJSONFile(domEdgesFile, dominators.LoadEdges)
	if err != nil {
		return fmt.Errorf("failed to load edges: %w", err)
	}

	parentsFile, err := os.Open(domParentsFile)
	if err != nil {
		return fmt.Errorf("failed to open parents file: %w", err)
	}
	defer parentsFile.Close()

	parents, inferredRoot, err := dominators.LoadParents(parentsFile)
	if err != nil {
		return fmt.Errorf("failed to load parents: %w", err)
	}

	postorder, err := loadJSONFile(domPostorderFile, dominators.LoadOrder)
	if err != nil {
		return fmt.Errorf("failed to load postorder: %w", err)
	}

	var preorder []int
	if domPreorderFile != "" {
		preorder, err = loadJSONFile(domPreorderFile, dominators.LoadOrder)
		if err != nil {
			return fmt.Errorf("failed to load preorder: %w", err)
		}
	}

	root := domRoot
	if root < 0 {
		root = inferredRoot
	}

	graph := dominators.BuildFlowGraph(root, parents, postorder, preorder, edges)

	if maxNodes := cfg.Dominators.MaxNodes; maxNodes > 0 && graph.N > maxNodes {
		return apperrors.New(apperrors.CodeInvalidInput,
			fmt.Sprintf("graph has %d nodes, exceeding configured dominators.max_nodes=%d", graph.N, maxNodes))
	}

	log.Info("Computing dominator tree: %d nodes, %d edges, root=%d", graph.N, len(graph.Edges), root)

	start := time.Now()
	idom, err := dominators.ComputeDominators(cmd.Context(), graph, log)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("dominator computation failed: %w", err)
	}

	log.Info("Dominator tree computed in %s", elapsed)

	if err := writeDominatorResult(os.Stdout, idom, format, graph); err != nil {
		return err
	}

	if domPersist || cfg.Dominators.Persist {
		if err := persistDominatorRun(cmd.Context(), cfg, graph, format, elapsed); err != nil {
			log.Warn("Failed to persist dominator run: %v", err)
		}
	}

	return nil
}

func loadJSONFile[T any](path string, load func(r io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return load(f)
}

func writeDominatorResult(w io.Writer, idom []int, format string, g *dominators.FlowGraph) error {
	switch strings.ToLower(format) {
	case "", "text":
		return dominators.WriteText(w, idom)
	case "json":
		return dominators.WriteResultJSON(w, idom)
	case "dimacs":
		return dominators.WriteDIMACSParents(w, dominatorTreeGraph(g, idom))
	default:
		return fmt.Errorf("unknown output format: %q (valid: text, json, dimacs)", format)
	}
}

// dominatorTreeGraph builds a FlowGraph whose Parents slice is the computed
// idom array, so the dominator tree itself can be emitted in DIMACS form.
func dominatorTreeGraph(g *dominators.FlowGraph, idom []int) *dominators.FlowGraph {
	return &dominators.FlowGraph{
		Root:    g.Root,
		N:       g.N,
		Parents: idom,
	}
}

func persistDominatorRun(ctx context.Context, cfg *config.Config, g *dominators.FlowGraph, format string, elapsed time.Duration) error {
	db, err := repository.NewGormDB(&repository.DBConfig{
		Type:     cfg.Database.Type,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Database,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos := repository.NewRepositories(db, cfg.Database.Type)
	defer repos.Close()

	return repos.DominatorRun.SaveRun(ctx, &repository.DominatorRun{
		NodeCount:  g.N,
		EdgeCount:  len(g.Edges),
		DurationMS: elapsed.Milliseconds(),
		Format:     format,
	})
}
