package standalone

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/lanegrid/assetloader"
	"github.com/user-none/lanegrid/focus"
	"github.com/user-none/lanegrid/standalone/shader"
	"github.com/user-none/lanegrid/standalone/storage"
	"github.com/user-none/lanegrid/standalone/style"
	"github.com/user-none/lanegrid/texcache"
)

const (
	appName     = "lanegrid"
	windowTitle = "Lanegrid"

	minWindowWidth  = 640
	minWindowHeight = 400
)

// Options are the command line settings passed to Run
type Options struct {
	CatalogPath string   // Overrides config.catalog
	Import      []string // Folders or archives appended as lanes at startup
	ResetConfig bool     // Delete config.json before loading
}

// App is the main application struct that implements ebiten.Game
type App struct {
	opts Options

	// State management
	state AppState

	// Data
	config      *storage.Config
	catalog     *storage.Catalog
	catalogPath string

	// Error state
	errorFile        string
	errorPath        string
	configLoadFailed bool // True if config.json failed to load (don't overwrite on exit)

	// Grid and its graphics collaborators
	grid    *focus.Grid
	cache   *texcache.Cache
	fetcher *assetloader.Fetcher
	stage   *StageRenderer

	// UI managers
	hud               *HUD
	inputManager      *InputManager
	notification      *Notification
	sounds            *SoundPlayer
	rumbler           *Rumbler
	screenshotManager *ScreenshotManager
	importer          *Importer
	search            *LaneSearch
	clipboard         style.Clipboard

	// Shader manager for visual effects
	shaderManager *shader.Manager
	shaderBuffer  *ebiten.Image
	shaderIDs     []string

	// Window tracking for persistence
	windowX, windowY   int
	windowWidth        int
	windowHeight       int
	lastWindowedWidth  int // Last non-fullscreen width (physical pixels)
	lastWindowedHeight int // Last non-fullscreen height (physical pixels)

	// Screenshot pending flag (set in Update, processed in Draw)
	screenshotPending bool

	// HiDPI: current device scale factor tracked across Layout calls
	currentDPIScale float64

	// Fullscreen: track state so it can be saved on exit even if macOS
	// has already left native fullscreen by the time saveWindowState runs.
	lastFullscreenState bool
}

// Run is the public entry point. It initializes storage, configures the
// window, creates the app, and starts the Ebiten game loop.
func Run(opts Options) error {
	storage.Init(appName)

	if opts.ResetConfig {
		if err := storage.DeleteConfig(); err != nil {
			return fmt.Errorf("failed to reset config: %w", err)
		}
	}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowWidth, minWindowHeight, -1, -1)

	app, err := newApp(opts)
	if err != nil {
		return err
	}

	// Restore window size from saved config (before RunGame to avoid resize flash)
	width, height, x, y, fullscreen := app.GetWindowConfig()
	ebiten.SetWindowSize(max(width, minWindowWidth), max(height, minWindowHeight))
	if x != nil && y != nil {
		ebiten.SetWindowPosition(*x, *y)
	}
	if fullscreen {
		ebiten.SetFullscreen(true)
	}

	runErr := ebiten.RunGame(app)
	app.SaveAndClose()
	return runErr
}

// newApp loads config and catalog and builds the grid. Corrupted files put
// the app in StateError instead of failing; graphics allocation failures
// are returned.
func newApp(opts Options) (*App, error) {
	app := &App{
		opts:              opts,
		state:             StateBrowsing,
		notification:      NewNotification(),
		screenshotManager: NewScreenshotManager(),
		importer:          NewImporter(),
		shaderManager:     shader.NewManager(),
		rumbler:           NewRumbler(0),
	}
	app.search = NewLaneSearch(app.jumpToLane)
	bindings := BuildBindings(storage.InputConfig{})
	app.inputManager = NewInputManager(bindings)
	app.hud = NewHUD(bindings)

	if err := storage.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}
	if err := storage.CreateConfigIfMissing(); err != nil {
		log.Printf("Warning: failed to create config: %v", err)
	}

	ok := app.loadConfig()
	app.applyConfig()
	if !ok {
		return app, nil
	}

	if app.loadCatalog() {
		if err := app.startGrid(0); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// loadConfig reads config.json, correcting out-of-range values. It returns
// false if the file could not be parsed.
func (a *App) loadConfig() bool {
	config, err := storage.LoadConfig()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		configPath, _ := storage.GetConfigPath()
		a.config = storage.DefaultConfig()
		a.configLoadFailed = true // Don't overwrite the file on exit
		a.enterError("config.json", configPath, err)
		return false
	}
	a.config = config

	if errs := storage.ValidateConfig(a.config, style.ThemeNames()); len(errs) > 0 {
		for _, e := range errs {
			log.Printf("Warning: config.json: %s", e)
		}
		storage.CorrectConfig(a.config, style.ThemeNames())
		if err := storage.SaveConfig(a.config); err != nil {
			log.Printf("Failed to save corrected config: %v", err)
		}
	}
	return true
}

// applyConfig pushes config values into style, input, audio, the loader and
// the shader chain.
func (a *App) applyConfig() {
	style.ApplyThemeByName(a.config.Theme)
	style.ApplyFontSize(storage.ValidFontSize(a.config.FontSize))

	bindings := BuildBindings(a.config.Input)
	a.inputManager.SetBindings(bindings)
	a.hud.SetBindings(bindings)

	if a.sounds == nil {
		a.sounds = NewSoundPlayer(a.config.Audio.Volume, a.config.Audio.Muted)
	} else {
		a.sounds.SetVolume(a.config.Audio.Volume)
		a.sounds.SetMuted(a.config.Audio.Muted)
	}

	a.rumbler.SetLevel(a.config.Input.Rumble)

	if a.stage != nil {
		a.stage.Dispose()
	}
	a.stage = NewStageRenderer(a.config.Layout)

	known, unknown := shader.FilterKnown(a.config.Shaders.UIShaders)
	for _, id := range unknown {
		log.Printf("Warning: unknown shader %q ignored", id)
	}
	a.shaderIDs = known
	a.shaderManager.PreloadShaders(known)

	a.fetcher = assetloader.New(a.loaderOptions())
	a.cache = nil
}

func (a *App) loaderOptions() assetloader.Options {
	l := a.config.Loader
	opts := assetloader.Options{
		Workers:        l.Workers,
		Timeout:        time.Duration(l.TimeoutSeconds) * time.Second,
		MaxTextureSize: l.MaxTextureSize,
	}
	if l.DiskCache {
		dir, err := storage.GetArtworkDir()
		if err != nil {
			log.Printf("Warning: disk cache disabled: %v", err)
		} else {
			opts.CacheDir = dir
		}
	}
	return opts
}

// loadCatalog reads the catalog and appends any command line imports. It
// returns false if the file could not be parsed.
func (a *App) loadCatalog() bool {
	override := a.opts.CatalogPath
	if override == "" {
		override = a.config.Catalog
	}
	path, err := storage.GetCatalogPath(override)
	if err != nil {
		a.enterError("catalog.json", override, err)
		return false
	}
	a.catalogPath = path

	if err := storage.CreateCatalogIfMissing(path); err != nil {
		log.Printf("Warning: failed to create catalog: %v", err)
	}

	catalog, err := storage.LoadCatalog(path)
	if err != nil {
		log.Printf("Failed to load catalog: %v", err)
		a.enterError("catalog.json", path, err)
		return false
	}

	if errs := storage.ValidateCatalog(catalog); len(errs) > 0 {
		for _, e := range errs {
			log.Printf("Warning: catalog: %s", e)
		}
		storage.CorrectCatalog(catalog)
		a.saveCatalogTo(path, catalog)
	}
	a.catalog = catalog

	imported := false
	for _, p := range a.opts.Import {
		r := a.importer.Import(p)
		if r.err != nil {
			log.Printf("Warning: failed to import %s: %v", p, r.err)
			continue
		}
		a.catalog.AddLane(r.title, r.keys)
		imported = true
	}
	a.opts.Import = nil
	if imported {
		a.saveCatalog()
	}
	return true
}

func (a *App) saveCatalog() {
	a.saveCatalogTo(a.catalogPath, a.catalog)
}

func (a *App) saveCatalogTo(path string, c *storage.Catalog) {
	if err := storage.SaveCatalog(path, c); err != nil {
		log.Printf("Failed to save catalog: %v", err)
	}
}

// startGrid builds the grid from the catalog, attaches buffers and
// resources, and moves the focus down to lane. The cache survives rebuilds
// so already loaded assets are reused.
func (a *App) startGrid(lane int) error {
	if a.cache == nil {
		cache, err := texcache.New(imageDevice{}, a.fetcher, nil)
		if err != nil {
			return fmt.Errorf("failed to create texture cache: %w", err)
		}
		a.cache = cache
	}

	g, err := buildGrid(a.catalog, a.config)
	if err != nil {
		return err
	}
	if err := g.LoadAssets(&quadAllocator{}, a.cache); err != nil {
		return fmt.Errorf("failed to load assets: %w", err)
	}
	a.grid = g
	a.focusLane(lane)
	return nil
}

// focusLane moves the focus to the given lane one step at a time so the
// grid animates the scroll.
func (a *App) focusLane(target int) {
	for a.grid.ActiveLaneIndex() != target {
		dir := focus.DirDown
		if a.grid.ActiveLaneIndex() > target {
			dir = focus.DirUp
		}
		if !a.grid.HandleInput(dir) {
			return
		}
	}
}

// jumpToLane focuses the lane whose title best matches query
func (a *App) jumpToLane(query string) {
	if a.grid == nil {
		return
	}
	lanes := a.grid.Lanes()
	titles := make([]string, len(lanes))
	for i, l := range lanes {
		titles[i] = laneLabel(l.Title(), i)
	}
	if i := bestLane(titles, query); i >= 0 {
		a.focusLane(i)
	}
}

func (a *App) enterError(file, path string, err error) {
	a.errorFile = file
	a.errorPath = path
	a.hud.SetError(file+" could not be read", []string{path, err.Error()})
	a.setState(StateError)
}

func (a *App) setState(s AppState) {
	a.state = s
	a.search.Close()
	a.inputManager.Reset()
	a.hud.SetState(s)
}

// handleResetAndContinue replaces the unreadable file with defaults and
// carries on with startup.
func (a *App) handleResetAndContinue() error {
	switch a.errorFile {
	case "config.json":
		if err := storage.DeleteConfig(); err != nil {
			log.Printf("Failed to delete config: %v", err)
		}
		a.config = storage.DefaultConfig()
		if err := storage.SaveConfig(a.config); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
		a.configLoadFailed = false
		a.applyConfig()
	case "catalog.json":
		if a.errorPath != "" {
			a.saveCatalogTo(a.errorPath, storage.DefaultCatalog())
		}
	}

	a.setState(StateBrowsing)
	if !a.loadCatalog() {
		return nil
	}
	return a.startGrid(0)
}

// GetWindowConfig returns the saved window dimensions, position, and fullscreen state from config.
func (a *App) GetWindowConfig() (width, height int, x, y *int, fullscreen bool) {
	return a.config.Window.Width, a.config.Window.Height, a.config.Window.X, a.config.Window.Y, a.config.Window.Fullscreen
}

// saveWindowState saves current window position and size to config
func (a *App) saveWindowState() {
	// Don't overwrite config if it failed to load (user may want to fix it manually)
	if a.configLoadFailed {
		return
	}

	// lastWindowedWidth/Height are only set when not in fullscreen, so if the
	// app was fullscreen for its entire lifetime they remain 0.
	if a.lastWindowedWidth == 0 || a.lastWindowedHeight == 0 {
		return
	}

	// Use lastFullscreenState instead of IsFullscreen() because macOS exits
	// native fullscreen before this handler runs on Cmd+Q.
	s := style.DPIScale()
	a.config.Window.Width = int(float64(a.lastWindowedWidth) / s)
	a.config.Window.Height = int(float64(a.lastWindowedHeight) / s)
	x, y := a.windowX, a.windowY
	a.config.Window.X = &x
	a.config.Window.Y = &y
	a.config.Window.Fullscreen = a.lastFullscreenState

	if err := storage.SaveConfig(a.config); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

// toggleFullscreen toggles between fullscreen and windowed mode
func (a *App) toggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
	a.lastFullscreenState = ebiten.IsFullscreen()
}

func (a *App) toggleMute() {
	a.config.Audio.Muted = !a.config.Audio.Muted
	a.sounds.SetMuted(a.config.Audio.Muted)
	if a.config.Audio.Muted {
		a.notification.ShowShort("Sound off")
	} else {
		a.notification.ShowShort("Sound on")
	}
}

// Update implements ebiten.Game
func (a *App) Update() error {
	// Track window position and fullscreen state for save on exit.
	// Layout() handles width/height, but position must be queried here.
	a.windowX, a.windowY = ebiten.WindowPosition()
	a.lastFullscreenState = ebiten.IsFullscreen()

	keys := a.inputManager.Update()
	if keys.Screenshot {
		a.screenshotPending = true
	}
	if keys.Fullscreen {
		a.toggleFullscreen()
	}
	if keys.Mute && a.state != StateError && !a.search.IsActive() {
		a.toggleMute()
	}

	// Finished loads are applied before the grid reads them this frame
	if a.cache != nil {
		a.cache.Pump()
	}

	switch a.state {
	case StateError:
		if keys.Confirm {
			if err := a.handleResetAndContinue(); err != nil {
				return err
			}
		} else if keys.Back {
			return ebiten.Termination
		}
	case StateHelp:
		if keys.Help || keys.Back {
			a.setState(StateBrowsing)
		}
	default:
		a.updateBrowsing(keys)
	}

	if r, ok := a.importer.Poll(); ok {
		if err := a.applyImport(r); err != nil {
			return err
		}
	}

	if a.grid != nil {
		a.grid.Tick(1.0 / float64(ebiten.TPS()))
	}

	var stats texcache.Stats
	if a.cache != nil {
		stats = a.cache.Stats()
	}
	a.hud.Update(a.grid, stats, a.windowWidth)
	return nil
}

func (a *App) updateBrowsing(keys GlobalKeys) {
	if a.search.HandleInput() {
		return
	}

	switch {
	case keys.Search:
		if a.grid != nil {
			a.search.Activate()
		}
		return
	case keys.Help:
		a.setState(StateHelp)
		return
	case keys.Import:
		if !a.importer.Start() {
			a.notification.ShowShort("Import already in progress")
		}
	case keys.Copy:
		a.copyFocused()
	case keys.Paste:
		a.pasteFocused()
	}

	if a.grid == nil {
		return
	}
	if dir := a.inputManager.Navigation(); dir != focus.DirNone {
		moved := a.grid.HandleInput(dir)
		a.sounds.PlayNavigation(moved)
		a.rumbler.Navigation(moved)
	}
}

// copyFocused puts the focused tile's asset key on the clipboard
func (a *App) copyFocused() {
	t := a.focusedTile()
	if t == nil {
		a.notification.ShowShort("No tile focused")
		return
	}
	if !a.clipboard.WriteText(t.AssetID()) {
		a.notification.ShowShort("Clipboard not available")
		return
	}
	key, _ := style.TruncateStart(t.AssetID(), 48)
	a.notification.ShowShort("Copied " + key)
}

// pasteFocused points the focused tile at the asset key on the clipboard and
// saves the catalog.
func (a *App) pasteFocused() {
	t := a.focusedTile()
	if t == nil {
		a.notification.ShowShort("No tile focused")
		return
	}
	key := strings.TrimSpace(a.clipboard.ReadText())
	if key == "" {
		a.notification.ShowShort("Clipboard is empty")
		return
	}
	if _, err := assetloader.ParseKey(key); err != nil {
		a.notification.ShowShort("Not an image key or URL")
		return
	}
	if err := t.SetAsset(key, a.cache); err != nil {
		log.Printf("Failed to set asset: %v", err)
		a.notification.ShowDefault("Failed to set image")
		return
	}

	lane := a.grid.ActiveLaneIndex()
	if i, ok := a.grid.ActiveLane().SelectedIndex(); ok {
		a.catalog.Lanes[lane].Tiles[i].Asset = key
		a.saveCatalog()
	}
}

func (a *App) focusedTile() *focus.Tile {
	if a.grid == nil {
		return nil
	}
	return a.grid.Focused()
}

// applyImport appends an imported lane and focuses it
func (a *App) applyImport(r importResult) error {
	if r.err != nil {
		log.Printf("Warning: import failed: %v", r.err)
		a.notification.ShowDefault("Import failed: " + r.err.Error())
		return nil
	}
	if a.catalog == nil {
		return nil
	}

	lane := a.catalog.AddLane(r.title, r.keys)
	a.saveCatalog()
	if err := a.startGrid(lane); err != nil {
		return err
	}
	a.notification.ShowDefault(fmt.Sprintf("Added %s (%d images)", r.title, len(r.keys)))
	return nil
}

// Draw implements ebiten.Game
func (a *App) Draw(screen *ebiten.Image) {
	// Advance frame counter for animated shaders
	a.shaderManager.IncrementFrame()

	a.stage.Render(a.grid, style.Background)

	if len(a.shaderIDs) == 0 {
		screen.Fill(style.Background)
		a.stage.DrawScaled(screen)
		a.hud.Draw(screen)
		a.search.Draw(screen)
		a.notification.Draw(screen)
	} else {
		sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
		buffer := a.getOrCreateShaderBuffer(sw, sh)
		buffer.Fill(style.Background)
		a.stage.DrawScaled(buffer)
		a.hud.Draw(buffer)
		a.search.Draw(buffer)

		processed := a.shaderManager.ApplyPreprocessEffects(buffer, a.shaderIDs)

		// Notification drawn after effects, before shaders
		a.notification.Draw(processed)

		a.shaderManager.ApplyShaders(screen, processed, a.shaderIDs)
	}

	// Take screenshot if pending (after everything is drawn)
	if a.screenshotPending {
		a.screenshotPending = false
		if _, err := a.screenshotManager.TakeScreenshot(screen); err != nil {
			log.Printf("Screenshot failed: %v", err)
		}
	}
}

// Layout implements ebiten.Game
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Query the device scale factor for HiDPI/Retina rendering
	s := 1.0
	if m := ebiten.Monitor(); m != nil {
		s = m.DeviceScaleFactor()
	}
	if s != a.currentDPIScale {
		a.currentDPIScale = s
		style.SetDPIScale(s)
		a.hud.Invalidate()
	}

	// Return physical pixel dimensions so the grid renders at full resolution
	w := int(float64(outsideWidth) * s)
	h := int(float64(outsideHeight) * s)
	a.windowWidth = w
	a.windowHeight = h
	// Track windowed dimensions separately so fullscreen doesn't overwrite them.
	if !ebiten.IsFullscreen() {
		a.lastWindowedWidth = w
		a.lastWindowedHeight = h
	}
	return w, h
}

// getOrCreateShaderBuffer returns a buffer matching the given dimensions
func (a *App) getOrCreateShaderBuffer(width, height int) *ebiten.Image {
	if a.shaderBuffer != nil {
		bw, bh := a.shaderBuffer.Bounds().Dx(), a.shaderBuffer.Bounds().Dy()
		if bw == width && bh == height {
			return a.shaderBuffer
		}
		a.shaderBuffer.Deallocate()
	}
	a.shaderBuffer = ebiten.NewImage(width, height)
	return a.shaderBuffer
}

// SaveAndClose saves window state and releases audio before exit
func (a *App) SaveAndClose() {
	a.saveWindowState()
	if a.sounds != nil {
		a.sounds.Close()
	}
	a.shaderManager.ResetBuffers()
}
