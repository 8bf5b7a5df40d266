package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"huepick/internal/colorconv"
	"huepick/internal/export"
	"huepick/internal/palette"
	"huepick/internal/picker"
	"huepick/internal/share"
	"huepick/internal/ui"
)

const defaultPort = 8942

var version = "dev"

var (
	flagSeed    string
	flagPalette string
	flagHost    bool
	flagJoin    string
	flagPort    int
	flagCount   int
	flagOut     string
	flagRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "huepick",
	Short: "An HSL color picker with shareable sessions",
	Long: `huepick is a saturation/lightness color picker. Run it bare for a local
picker, host a session to sync the picked color across machines on the LAN,
or join one by address or mDNS discovery.`,
	RunE:          runPicker,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var convertCmd = &cobra.Command{
	Use:   "convert <color>",
	Short: `Print a color ("#rrggbb" or "r,g,b") in every notation`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var pickCmd = &cobra.Command{
	Use:   "pick <image>",
	Short: "Extract the dominant colors of an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runPick,
}

var exportCmd = &cobra.Command{
	Use:   "export <file.pdf>",
	Short: "Render the palette to a PDF swatch sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("huepick %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPalette, "palette", "", "HCL palette file for the preset swatches")
	rootCmd.Flags().StringVar(&flagSeed, "seed", "", `startup color as "r,g,b"`)
	rootCmd.Flags().BoolVar(&flagHost, "host", false, "host a shared session on the local network")
	rootCmd.Flags().StringVar(&flagJoin, "join", "", `join a session at "ip:port", or "auto" to discover one`)
	rootCmd.Flags().IntVar(&flagPort, "port", defaultPort, "port for hosted sessions")

	pickCmd.Flags().IntVar(&flagCount, "count", 6, "how many colors to extract")
	pickCmd.Flags().StringVar(&flagOut, "out", "", "also export the extracted palette to this PDF")
	pickCmd.Flags().BoolVar(&flagRun, "run", false, "open the picker seeded with the dominant color")

	rootCmd.AddCommand(convertCmd, pickCmd, exportCmd, versionCmd)
}

func main() {
	log.SetFlags(log.Ltime)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPicker(cmd *cobra.Command, args []string) error {
	pal, err := loadPalette()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == "" && pal.Seed != "" {
		seed = seedFromHex(pal.Seed)
	}
	return launch(seed, pal)
}

// launch builds the engine, wires the shared session if asked for, and hands
// everything to the UI. Blocks until the window closes.
func launch(seed string, pal *palette.Palette) error {
	engine := picker.New(picker.DefaultConfig())
	status, err := wireSession(engine)
	if err != nil {
		return err
	}
	ui.RunApp(engine, pal, seed, status)
	return nil
}

// wireSession connects the engine to a session per the host/join flags and
// returns a status line for the UI, or "" when running alone.
func wireSession(engine *picker.Engine) (string, error) {
	if flagHost && flagJoin != "" {
		return "", fmt.Errorf("--host and --join are mutually exclusive")
	}
	if !flagHost && flagJoin == "" {
		return "", nil
	}

	site := uuid.NewString()

	// Remote frames arrive on network goroutines; hop onto the fyne event
	// loop before touching the engine, and mute the rebroadcast while the
	// apply runs so a frame never bounces between instances forever.
	muted := false
	applyRemote := func(msg share.Message) {
		if fyne.CurrentApp() == nil {
			return // frame raced the UI startup; the next one wins
		}
		fyne.Do(func() {
			muted = true
			engine.ApplyRGB(msg.RGB())
			muted = false
		})
	}

	if flagHost {
		host := share.NewHost(site, applyRemote)
		go func() {
			if err := host.ListenAndServe(flagPort); err != nil {
				log.Printf("[share] %v", err)
			}
		}()
		engine.OnChange(func(ch picker.Change) {
			if muted {
				return
			}
			host.AnnounceChange(share.ColorMessage(site, ch))
		})
		if _, err := share.Advertise(flagPort); err != nil {
			log.Printf("[share] advertise: %v", err)
		}
		ip, err := share.OutgoingIP()
		if err != nil {
			ip = "127.0.0.1"
		}
		return fmt.Sprintf("Hosting session at %s:%d", ip, flagPort), nil
	}

	addr := flagJoin
	if addr == "auto" {
		found, err := share.FindSession()
		if err != nil {
			return "", err
		}
		addr = found
	}
	client, err := share.Dial(addr, site, applyRemote)
	if err != nil {
		return "", err
	}
	engine.OnChange(func(ch picker.Change) {
		if muted {
			return
		}
		client.AnnounceChange(share.ColorMessage(site, ch))
	})
	return "Joined session at " + addr, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	c, err := parseColorArg(args[0])
	if err != nil {
		return err
	}
	h, s, l := colorconv.RGBToHSL(c)
	fmt.Printf("hex  %s\n", c.Hex())
	fmt.Printf("rgb  %s\n", c)
	fmt.Printf("hsl  hsl(%.0f, %.0f%%, %.0f%%)\n", h*360, s*100, l*100)
	return nil
}

func runPick(cmd *cobra.Command, args []string) error {
	img, err := imaging.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	pal := palette.FromImage(img, flagCount)
	if len(pal.Entries) == 0 {
		return fmt.Errorf("no colors found in %s", args[0])
	}

	for _, e := range pal.Entries {
		fmt.Printf("%-10s %s  %s\n", e.Name, e.Color.Hex(), e.Color)
	}

	if flagOut != "" {
		if err := export.Sheet(flagOut, pal); err != nil {
			return err
		}
		log.Printf("palette sheet written to %s", flagOut)
	}

	if flagRun {
		c := pal.Entries[0].Color
		return launch(fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B), pal)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	pal, err := loadPalette()
	if err != nil {
		return err
	}
	if err := export.Sheet(args[0], pal); err != nil {
		return err
	}
	log.Printf("palette sheet written to %s", args[0])
	return nil
}

// loadPalette resolves the palette flag, falling back to generated presets.
func loadPalette() (*palette.Palette, error) {
	if flagPalette == "" {
		return palette.Generate(8), nil
	}
	return palette.Load(flagPalette)
}

// parseColorArg accepts "#rrggbb" or "r,g,b".
func parseColorArg(s string) (colorconv.RGB, error) {
	if !strings.Contains(s, ",") {
		return colorconv.ParseHex(s)
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return colorconv.RGB{}, fmt.Errorf("invalid color %q: want three channels", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return colorconv.RGB{}, fmt.Errorf("invalid channel %q in %q", p, s)
		}
		ch[i] = uint8(n)
	}
	return colorconv.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func seedFromHex(hex string) string {
	c, err := colorconv.ParseHex(hex)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}
