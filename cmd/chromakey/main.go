package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ironsheep/chromakey-mcp/internal/colorspace"
	"github.com/ironsheep/chromakey-mcp/internal/imaging"
	"github.com/ironsheep/chromakey-mcp/internal/pipeline"
	"github.com/ironsheep/chromakey-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const defaultOutput = "chromakey_out.png"

func main() {
	// Configure logging to stderr (stdout is for MCP protocol in serve mode)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "chromakey %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			printHelp(stdout)
			return 0
		case "serve":
			return serve()
		}
	}

	output := os.Getenv("CHROMAKEY_OUTPUT")
	if output == "" {
		output = defaultOutput
	}
	if len(args) >= 2 && args[0] == "-o" {
		output = args[1]
		args = args[2:]
	}

	inv, ok := parseInvocation(args)
	if !ok {
		printUsage(stdout, args)
		return 2
	}

	p := pipeline.New(debugLogger())
	if err := inv.execute(p, output); err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	log.Printf("Wrote %s", output)
	return 0
}

func serve() int {
	if debugEnabled() {
		log.Printf("chromakey MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}
	server.Version = Version

	srv := server.NewWithLogger(debugLogger())
	if err := srv.Run(); err != nil {
		log.Printf("Server error: %v", err)
		return 1
	}
	return 0
}

// invocation is one parsed command line.
type invocation struct {
	space colorspace.Space

	// Set for the decompose task.
	imagePath string

	// Set for the composite task.
	scenicPath      string
	greenscreenPath string
}

// parseInvocation recognizes the two task shapes:
//
//	<colorspace-flag> <image-file>        decompose
//	<scenic-file> <greenscreen-file>      composite
//
// Both arguments must name a file with an extension.
func parseInvocation(args []string) (invocation, bool) {
	if len(args) != 2 || !strings.Contains(args[1], ".") {
		return invocation{}, false
	}
	if colorspace.IsFlag(args[0]) {
		space, _ := colorspace.Parse(args[0])
		return invocation{space: space, imagePath: args[1]}, true
	}
	if strings.Contains(args[0], ".") && !strings.HasPrefix(args[0], "-") {
		return invocation{scenicPath: args[0], greenscreenPath: args[1]}, true
	}
	return invocation{}, false
}

func (inv invocation) execute(p *pipeline.Pipeline, output string) error {
	if inv.imagePath != "" {
		img, err := imaging.LoadFile(inv.imagePath)
		if err != nil {
			return err
		}
		view, err := p.Decompose(img, inv.space)
		if err != nil {
			return err
		}
		return imaging.Save(output, view)
	}

	scenic, err := imaging.LoadFile(inv.scenicPath)
	if err != nil {
		return err
	}
	greenscreen, err := imaging.LoadFile(inv.greenscreenPath)
	if err != nil {
		return err
	}
	res, err := p.Composite(scenic, greenscreen, pipeline.CompositeOptions{MatchScenicSize: true})
	if err != nil {
		return err
	}
	return imaging.Save(output, res.View)
}

func debugEnabled() bool {
	return os.Getenv("CHROMAKEY_LOG_LEVEL") == "debug"
}

func debugLogger() *log.Logger {
	if !debugEnabled() {
		return nil
	}
	return log.New(os.Stderr, "[pipeline] ", log.Ldate|log.Ltime)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "chromakey - color space decomposition and green-screen compositing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  chromakey [-o out.png] %s imageFile\n", strings.Join(colorspace.Flags(), "|"))
	fmt.Fprintln(w, "  chromakey [-o out.png] scenicImageFile greenScreenImageFile")
	fmt.Fprintln(w, "  chromakey serve")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -o path          Output file (.png, .jpg, .bmp). Default chromakey_out.png")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  CHROMAKEY_OUTPUT=path        Default output file")
	fmt.Fprintln(w, "  CHROMAKEY_LOG_LEVEL=debug    Log pipeline stage sizes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "serve runs an MCP server over stdin/stdout.")
}

// printUsage explains which of the two invocation shapes the arguments
// missed.
func printUsage(w io.Writer, args []string) {
	fmt.Fprintln(w)
	if len(args) == 2 && strings.Contains(args[1], ".") {
		fmt.Fprintf(w, "To run the color space task, use one of %s as the first argument.\n", strings.Join(colorspace.Flags(), ", "))
		fmt.Fprintln(w, "To run the green-screen task, give scenicImageFile greenScreenImageFile (both with extensions).")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, "Expected exactly two arguments:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Color space task:")
	fmt.Fprintf(w, "  chromakey %s imageFile\n", strings.Join(colorspace.Flags(), "|"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Green-screen task:")
	fmt.Fprintln(w, "  chromakey scenicImageFile greenScreenImageFile")
	fmt.Fprintln(w)
}
