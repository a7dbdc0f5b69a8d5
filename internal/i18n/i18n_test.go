package i18n

import "testing"

func TestLocalizer_Russian(t *testing.T) {
	l := New("ru")
	if got := l.T(MsgBalanceGet); got != "Возникла ошибка при запросе баланса. Обратитесь в поддержку" {
		t.Errorf("T(balance.get) = %q", got)
	}
	if got := l.T(CategoryMsg("expense", OpDelete)); got != "Возникла ошибка при удалении категории расходов. Обратитесь в поддержку" {
		t.Errorf("T(expense.delete) = %q", got)
	}
	if got := l.T(MsgNoData); got != "Нет данных" {
		t.Errorf("T(chart.no_data) = %q", got)
	}
}

func TestLocalizer_EnglishAndFallback(t *testing.T) {
	en := New("en")
	if got := en.T(MsgNoData); got != "No data" {
		t.Errorf("en T(chart.no_data) = %q", got)
	}

	de := New("de")
	if got := de.T(MsgNoData); got != "Нет данных" {
		t.Errorf("unsupported language should fall back to Russian, got %q", got)
	}

	if got := New().T(MsgNoData); got != "Нет данных" {
		t.Errorf("no language should fall back to Russian, got %q", got)
	}

	if got := New("de-DE,en;q=0.5").T(MsgNoData); got != "No data" {
		t.Errorf("accept list with English should pick English, got %q", got)
	}

	if got := en.T("no.such.message"); got != "no.such.message" {
		t.Errorf("unknown id should be echoed, got %q", got)
	}
}

func TestEveryMessageTranslated(t *testing.T) {
	ids := []string{
		MsgBalanceGet, MsgBalanceUpdate, MsgOperationsList, MsgOperationsGet,
		MsgOperationsCreate, MsgOperationsUpdate, MsgOperationsDelete,
		MsgLoginFailed, MsgSignupFailed, MsgLogin, MsgLogout, MsgNoData,
		MsgChartIncome, MsgChartExpense, MsgCategoryHint, MsgEdit, MsgDelete,
		MsgIntervalRequired, KindMsg("income"), KindMsg("expense"),
	}
	for _, kind := range []string{"income", "expense"} {
		for _, op := range []string{OpList, OpGet, OpCreate, OpUpdate, OpDelete} {
			ids = append(ids, CategoryMsg(kind, op))
		}
	}
	for _, lang := range []string{"ru", "en"} {
		l := New(lang)
		for _, id := range ids {
			if got := l.T(id); got == id {
				t.Errorf("%s: missing translation for %q", lang, id)
			}
		}
	}
}
