package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Jalali Picker"
	AppID             = "com.github.tartampluch.go-jalali-picker"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagPort         = "port"
	FlagDescPort     = "Serve the feeds on this port instead of the saved one"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Picker Defaults
// -----------------------------------------------------------------------------

const (
	DefaultYearStart    = 1330
	DefaultYearEnd      = 1400
	DefaultInitialYear  = 1370
	DefaultInitialMonth = 1
	DefaultInitialDay   = 1
	MinYear             = 1
	MaxYear             = 9999
	MaxYearSpan         = 500

	// MaxDayCount is the length of the day column when day clamping is off.
	MaxDayCount  = 31
	MonthsInYear = 12

	// Jalali month lengths: the first six months have 31 days, the next five 30,
	// and Esfand has 29 days (30 in leap years).
	LongMonthDays      = 31
	ShortMonthDays     = 30
	EsfandDays         = 29
	EsfandLeapDays     = 30
	LastLongMonth      = 6
	DefaultLineSize    = 4
	DateFormatJalali   = "%04d/%02d/%02d"
	DefaultContactName = "Jalali Picker"
)

// DefaultMonthNames are the twelve Persian month names. The position in the list
// (1-based) is the month number.
var DefaultMonthNames = []string{
	"فروردین",
	"اردیبهشت",
	"خرداد",
	"تیر",
	"مرداد",
	"شهریور",
	"مهر",
	"آبان",
	"آذر",
	"دی",
	"بهمن",
	"اسفند",
}

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 420
	MainWindowHeight    = 360
	SettingsWindowWidth = 480
	PickerColumns       = 3
	DefaultPort         = "18081"
	DefaultLanguage     = "fa"

	// Preference Keys
	PrefLanguage   = "language"
	PrefYearStart  = "year_range_start"
	PrefYearEnd    = "year_range_end"
	PrefClampDays  = "clamp_days"
	PrefServerPort = "server_port"
	PrefLastYear   = "last_year"
	PrefLastMonth  = "last_month"
	PrefLastDay    = "last_day"
	PrefLastRun    = "last_run_version"
	PrefLabel      = "event_label"
)

// LangFarsi selects Persian digits for every displayed number.
const LangFarsi = "fa"

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", LangFarsi}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyLblSelected    = "lbl_selected"     // Requires Date
	TKeyLblGregorian   = "lbl_gregorian"    // Requires Date
	TKeyLblNoSelection = "lbl_no_selection" // Shown before the first change
	TKeyLblFeed        = "lbl_feed"         // Requires URL
	TKeyBtnSettings    = "btn_settings"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblYearStart   = "lbl_year_start"
	TKeyLblYearEnd     = "lbl_year_end"
	TKeyHelpYears      = "help_years"
	TKeyLblClamp       = "lbl_clamp_days"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblLabel       = "lbl_event_label"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblPicker      = "lbl_picker"
	TKeyLblFooter      = "lbl_footer"
	TKeyEvtSummary     = "event_summary"     // Requires Name
	TKeyEvtSummaryAge  = "event_summary_age" // Requires Name, Age

	// Validation Errors (UI)
	TKeyErrYearReq   = "err_year_required"
	TKeyErrYearNum   = "err_year_number"
	TKeyErrYearOrder = "err_year_order"
	TKeyErrYearRange = "err_year_range" // Requires Min, Max
	TKeyErrYearSpan  = "err_year_span"  // Requires Max
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Jalali Picker//Engine//EN"
	ICalCalName   = "Jalali Anniversaries"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalDomain    = "jalalipicker"
	ICalYearsBack = 1
	ICalYearsNext = 1

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	DefaultICalRefresh = 24 * time.Hour
	DateFormatISO      = "2006-01-02"
	DateFormatBasic    = "20060102"
	VCardNoteFormat    = "Jalali: %s"

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
	UIDSalt         = "go-jalali-picker-v1-"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteCalendar      = "/calendar.ics"
	RouteContact       = "/contact.vcf"
	AddrSeparator      = ":"
	SchemeHTTP         = "http://"
	MinPort            = 1
	MaxPort            = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrMalformedNumeral = "malformed numeral"
	ErrUnknownMonth     = "unknown month name"
	ErrMonthNumber      = "month number out of list"
	ErrEmptyMonths      = "month name list is empty"
	ErrDuplicateMonth   = "duplicate month name"
	ErrInvalidRange     = "invalid year range: start after end"
	ErrYearBounds       = "year outside the supported range"
	ErrYearSpan         = "year range too long"
	ErrUnknownColumn    = "unknown picker column"
	ErrInvalidMonth     = "invalid jalali month"
	ErrInvalidDay       = "invalid jalali day"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrVCardEncode      = "failed to encode vCard data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrLocNotInit       = "localizer not initialized"
	ErrPickerBuild      = "failed to build picker"
	ErrColumnApply      = "failed to apply column value"
	ErrExportFailed     = "failed to export selected date"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, pick a date first."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary    = "Anniversary: %s"
	FallbackSummaryAge = "Anniversary: %s (%d)"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgDateChanged   = "Picker date changed"
	MsgColumnApplied = "Column change applied"
	MsgDayClamped    = "Day clamped to month length"
	MsgExportDone    = "Export generated"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Feed cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgSettingsSaved = "Saving preferences"
	MsgOpenSettings  = "Opening settings window"
	MsgSettingsFocus = "Settings window already open, requesting focus"
	MsgPrefsRestored = "Restored last picked date"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyRoute     = "route"
	LogKeyColumn    = "column"
	LogKeyValue     = "value"
	LogKeyDate      = "date"
	LogKeyDay       = "day"
	LogKeyMaxDay    = "max_day"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild     = "build"
	LogKeyApp       = "app"
	LogKeyVersion   = "version"
	LogKeyCommit    = "commit"
	LogKeyBuildDate = "build_date"
	LogKeyGoVer     = "go_version"
	LogKeyEnv       = "env"
	LogKeyOS        = "os"
	LogKeyArch      = "arch"
	LogKeyPID       = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompWidget   = "wheel_picker"
	CompComposer = "composer"
	CompEngine   = "engine"
	CompServer   = "server"
	CompMain     = "main"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
