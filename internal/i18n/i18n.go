// Package i18n localizes user-facing messages. Russian is the default
// language; English is bundled as well.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localesFS embed.FS

// Message IDs shared by several packages.
const (
	MsgBalanceGet       = "balance.get"
	MsgBalanceUpdate    = "balance.update"
	MsgOperationsList   = "operations.list"
	MsgOperationsGet    = "operations.get"
	MsgOperationsCreate = "operations.create"
	MsgOperationsUpdate = "operations.update"
	MsgOperationsDelete = "operations.delete"
	MsgLoginFailed      = "auth.login.failed"
	MsgSignupFailed     = "auth.signup.failed"
	MsgLogin            = "auth.login"
	MsgLogout           = "auth.logout"
	MsgNoData           = "chart.no_data"
	MsgChartIncome      = "chart.income"
	MsgChartExpense     = "chart.expense"
	MsgCategoryHint     = "category.placeholder"
	MsgEdit             = "action.edit"
	MsgDelete           = "action.delete"
	MsgIntervalRequired = "filter.interval.required"
	MsgReportTitle      = "report.title"
	MsgReportPeriod     = "report.period"
	MsgReportCategory   = "report.category"
	MsgReportAmount     = "report.amount"
	MsgReportTotal      = "report.total"
)

// Category operations; combine with a kind via CategoryMsg.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// CategoryMsg returns the message ID for a category operation of a kind,
// e.g. CategoryMsg("income", OpCreate) is "income.create".
func CategoryMsg(kind, op string) string {
	return kind + "." + op
}

// KindMsg returns the message ID naming a kind.
func KindMsg(kind string) string {
	return "kind." + kind
}

// Localizer resolves message IDs for one language.
type Localizer struct {
	loc *goi18n.Localizer
}

var defaultBundle *goi18n.Bundle

func init() {
	b, err := newBundle(localesFS)
	if err != nil {
		panic(fmt.Sprintf("load embedded locales: %v", err))
	}
	defaultBundle = b
}

func newBundle(fsys fs.FS) (*goi18n.Bundle, error) {
	bundle := goi18n.NewBundle(language.Russian)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(fsys, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return bundle, nil
}

// New returns a localizer for the given language tags, falling back to
// Russian.
func New(langs ...string) *Localizer {
	matcher := language.NewMatcher(defaultBundle.LanguageTags())
	if _, _, confidence := matcher.Match(parseTags(langs)...); confidence == language.No {
		langs = []string{language.Russian.String()}
	}
	return &Localizer{loc: goi18n.NewLocalizer(defaultBundle, langs...)}
}

func parseTags(langs []string) []language.Tag {
	var tags []language.Tag
	for _, l := range langs {
		parsed, _, err := language.ParseAcceptLanguage(l)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	return tags
}

// T localizes id. Unknown IDs are returned as-is so a missing translation
// never hides a message.
func (l *Localizer) T(id string) string {
	msg, err := l.loc.Localize(&goi18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return msg
}
