package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coursify/coursify/internal/api"
	"github.com/coursify/coursify/internal/catalog"
	"github.com/coursify/coursify/internal/service"
)

const (
	catalogFailedText = "Failed to load courses"
	logoutFailedText  = "Logout failed"
)

// Options carries presentation settings from config.
type Options struct {
	WebURL           string
	AutoplayInterval time.Duration
	ToastDuration    time.Duration
}

// App is the page controller: it renders from the current session and
// catalog and owns nothing else but ephemeral UI state.
type App struct {
	ctx     context.Context
	session *service.SessionStore
	catalog *service.CatalogLoader
	opts    Options
	log     *slog.Logger

	sess       service.Session
	sessCh     <-chan service.Session
	sessCancel func()
	cat        service.CatalogState

	route      string
	sidebar    sidebar
	carousel   carousel
	toasts     toasts
	loggingOut bool
	loading    bool

	login         form
	signup        form
	search        textinput.Model
	coursesCursor int

	width  int
	height int
	keys   keyMap
	help   help.Model
}

// New subscribes to the session store. The store should already be hydrated
// so the first frame shows the right affordances.
func New(ctx context.Context, session *service.SessionStore, loader *service.CatalogLoader, opts Options, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ch, cancel := session.Subscribe()
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "course title"
	return &App{
		ctx:        ctx,
		session:    session,
		catalog:    loader,
		opts:       opts,
		log:        logger,
		sess:       session.Snapshot(),
		sessCh:     ch,
		sessCancel: cancel,
		route:      routeHome,
		toasts:     toasts{ttl: opts.ToastDuration},
		login:      newLoginForm(),
		signup:     newSignupForm(),
		search:     search,
		width:      100,
		height:     32,
		keys:       defaultKeys(),
		help:       help.New(),
	}
}

// Init starts the one-shot catalog fetch alongside the session listener.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCatalog(), waitForSession(a.sessCh), autoplay(a.opts.AutoplayInterval))
}

// Close stops listening to the session store.
func (a *App) Close() {
	if a.sessCancel != nil {
		a.sessCancel()
	}
}

// loadCatalog starts a fetch unless one is already in flight, so an older
// response can never replace a newer one.
func (a *App) loadCatalog() tea.Cmd {
	if a.loading {
		return nil
	}
	a.loading = true
	return func() tea.Msg {
		st, err := a.catalog.Load(a.ctx)
		return catalogMsg{state: st, err: err}
	}
}

func waitForSession(ch <-chan service.Session) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return sessionMsg(s)
	}
}

func (a *App) logoutCmd() tea.Cmd {
	if a.loggingOut {
		return nil
	}
	a.loggingOut = true
	return func() tea.Msg {
		msg, err := a.session.Logout(a.ctx)
		return logoutDoneMsg{message: msg, err: err}
	}
}

func (a *App) loginCmd(email, password string) tea.Cmd {
	a.login.busy = true
	return func() tea.Msg {
		msg, err := a.session.Login(a.ctx, email, password)
		return loginDoneMsg{message: msg, err: err}
	}
}

func (a *App) signupCmd(req api.SignupRequest) tea.Cmd {
	a.signup.busy = true
	return func() tea.Msg {
		msg, err := a.session.Signup(a.ctx, req)
		return signupDoneMsg{message: msg, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.carousel.clamp(len(a.cat.Courses), cardsPerPage(a.width))
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case sessionMsg:
		a.sess = service.Session(m)
		return a, waitForSession(a.sessCh)
	case catalogMsg:
		a.loading = false
		a.cat = m.state
		a.carousel.reset()
		if m.err != nil {
			return a, a.toasts.failure(catalogFailedText)
		}
		return a, nil
	case logoutDoneMsg:
		return a, a.finishLogout(m)
	case loginDoneMsg:
		a.login.busy = false
		a.sess = a.session.Snapshot()
		if m.err != nil {
			a.log.Info("login rejected", "error", m.err)
			return a, a.toasts.failure(service.UserMessage(m.err, "Login failed"))
		}
		a.login = newLoginForm()
		a.navigate(routeHome)
		text := m.message
		if text == "" {
			text = "Logged in"
		}
		return a, a.toasts.success(text)
	case signupDoneMsg:
		a.signup.busy = false
		if m.err != nil {
			a.log.Info("signup rejected", "error", m.err)
			return a, a.toasts.failure(service.UserMessage(m.err, "Signup failed"))
		}
		a.signup = newSignupForm()
		a.navigate(routeLogin)
		return a, a.toasts.success(m.message)
	case autoplayMsg:
		if a.route == routeHome && carouselVisible(a.cat) {
			a.carousel.next(len(a.cat.Courses), cardsPerPage(a.width))
		}
		return a, autoplay(a.opts.AutoplayInterval)
	case toastExpiredMsg:
		a.toasts.expire(m.id)
		return a, nil
	}
	// cursor blink and other input plumbing
	return a, a.forwardToInput(msg)
}

// finishLogout applies the outcome of a logout. The store has already
// cleared the local session on both branches.
func (a *App) finishLogout(m logoutDoneMsg) tea.Cmd {
	a.loggingOut = false
	a.sess = a.session.Snapshot()
	a.sidebar.close()
	if errors.Is(m.err, service.ErrLogoutRemote) {
		a.log.Warn("logout fell back to local clear", "error", m.err)
		a.navigate(routeLogin)
		return a.toasts.failure(logoutFailedText)
	}
	cmds := []tea.Cmd{a.toasts.success(m.message)}
	if m.err != nil {
		a.log.Error("logout left local state behind", "error", m.err)
		cmds = append(cmds, a.toasts.failure("Could not clear the saved session"))
	}
	return tea.Batch(cmds...)
}

// navigate moves to route. Every navigation closes the sidebar.
func (a *App) navigate(route string) {
	a.sidebar.close()
	a.route = route
	switch route {
	case routeLogin:
		a.login.inputs[a.login.focus].Focus()
	case routeSignup:
		a.signup.inputs[a.signup.focus].Focus()
	case routeCourses:
		a.coursesCursor = 0
		a.search.Focus()
	default:
		a.search.Blur()
	}
	a.log.Debug("navigate", "route", route)
}

// activate runs a header or sidebar affordance.
func (a *App) activate(aff affordance) tea.Cmd {
	a.sidebar.close()
	switch aff {
	case affordLogin:
		a.navigate(routeLogin)
	case affordJoin:
		a.navigate(routeSignup)
	case affordLogout:
		return a.logoutCmd()
	}
	return nil
}

func (a *App) offered(aff affordance) bool {
	for _, x := range affordances(a.sess) {
		if x == aff {
			return true
		}
	}
	return false
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	switch a.route {
	case routeHome:
		return a.handleHomeKey(m)
	case routeLogin:
		return a.handleLoginKey(m)
	case routeSignup:
		return a.handleSignupKey(m)
	case routeCourses:
		return a.handleCoursesKey(m)
	}
	return a.handleHandoffKey(m)
}

func (a *App) handleHomeKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.sidebar.open {
		affs := affordances(a.sess)
		switch {
		case key.Matches(m, a.keys.Up):
			a.sidebar.move(-1, len(affs))
			return a, nil
		case key.Matches(m, a.keys.Down):
			a.sidebar.move(1, len(affs))
			return a, nil
		case key.Matches(m, a.keys.Select):
			return a, a.activate(affs[a.sidebar.cursor%len(affs)])
		case key.Matches(m, a.keys.Back):
			a.sidebar.close()
			return a, nil
		}
	}

	courses := a.cat.Courses
	per := cardsPerPage(a.width)
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Menu):
		a.sidebar.toggle()
	case key.Matches(m, a.keys.Login):
		if a.offered(affordLogin) {
			return a, a.activate(affordLogin)
		}
	case key.Matches(m, a.keys.Join):
		if a.offered(affordJoin) {
			return a, a.activate(affordJoin)
		}
	case key.Matches(m, a.keys.Logout):
		if a.offered(affordLogout) {
			return a, a.activate(affordLogout)
		}
	case key.Matches(m, a.keys.Prev):
		a.carousel.prev()
	case key.Matches(m, a.keys.Next):
		a.carousel.next(len(courses), per)
	case key.Matches(m, a.keys.Enroll):
		slot := int(m.String()[0] - '1')
		visible := a.carousel.visible(courses, per)
		if slot >= 0 && slot < len(visible) {
			a.navigate(visible[slot].BuyPath())
		}
	case key.Matches(m, a.keys.Explore):
		a.navigate(routeCourses)
	case key.Matches(m, a.keys.Teach):
		a.navigate(routeAdminSignup)
	case key.Matches(m, a.keys.Videos):
		a.navigate(routeCourseVideos)
	case key.Matches(m, a.keys.Reload):
		return a, a.loadCatalog()
	}
	return a, nil
}

func (a *App) handleLoginKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.Back) {
		a.navigate(routeHome)
		return a, nil
	}
	cmd, submit := a.login.update(m)
	if !submit {
		return a, cmd
	}
	v := a.login.values()
	return a, a.loginCmd(v["email"], v["password"])
}

func (a *App) handleSignupKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.Back) {
		a.navigate(routeHome)
		return a, nil
	}
	cmd, submit := a.signup.update(m)
	if !submit {
		return a, cmd
	}
	v := a.signup.values()
	return a, a.signupCmd(api.SignupRequest{
		FirstName: v["firstName"],
		LastName:  v["lastName"],
		Email:     v["email"],
		Password:  v["password"],
	})
}

func (a *App) handleCoursesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	results := catalog.Search(a.cat.Courses, a.search.Value())
	switch {
	case key.Matches(m, a.keys.Back):
		a.search.SetValue("")
		a.navigate(routeHome)
		return a, nil
	case key.Matches(m, a.keys.Up):
		if a.coursesCursor > 0 {
			a.coursesCursor--
		}
		return a, nil
	case key.Matches(m, a.keys.Down):
		if a.coursesCursor < len(results)-1 {
			a.coursesCursor++
		}
		return a, nil
	case key.Matches(m, a.keys.Select):
		if a.coursesCursor < len(results) {
			a.navigate(results[a.coursesCursor].BuyPath())
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.coursesCursor = 0
	return a, cmd
}

func (a *App) handleHandoffKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Back):
		a.navigate(routeHome)
	case key.Matches(m, a.keys.Login):
		if _, ok := courseIDFromRoute(a.route); ok && a.offered(affordLogin) {
			a.navigate(routeLogin)
		}
	}
	return a, nil
}

func (a *App) forwardToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.route {
	case routeLogin:
		a.login.inputs[a.login.focus], cmd = a.login.inputs[a.login.focus].Update(msg)
	case routeSignup:
		a.signup.inputs[a.signup.focus], cmd = a.signup.inputs[a.signup.focus].Update(msg)
	case routeCourses:
		a.search, cmd = a.search.Update(msg)
	}
	return cmd
}

// messages
type sessionMsg service.Session

type catalogMsg struct {
	state service.CatalogState
	err   error
}

type logoutDoneMsg struct {
	message string
	err     error
}

type loginDoneMsg struct {
	message string
	err     error
}

type signupDoneMsg struct {
	message string
	err     error
}
