package pages

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/web/templates/layout"
)

func renderDoc(t *testing.T, c templ.Component) (*goquery.Document, string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(t.Context(), &buf))
	html := buf.String()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return doc, html
}

func TestErrorPageEscapesMessage(t *testing.T) {
	doc, html := renderDoc(t, Error(ErrorData{
		PageData: layout.PageData{
			Title: "Error",
			Flash: &layout.FlashMessage{Type: `x" onclick="alert(1)`, Message: "<b>hi</b>"},
		},
		Status:  http.StatusNotFound,
		Message: `<img src=x onerror="alert(1)">`,
	}))

	assert.Equal(t, "Error | Word Scramble", doc.Find("title").Text())
	assert.Equal(t, "Not Found", doc.Find("main h1").Text())
	assert.Equal(t, `<img src=x onerror="alert(1)">`, doc.Find("p.error").Text())
	assert.Zero(t, doc.Find("img").Length())
	assert.Zero(t, doc.Find("b").Length())

	flash := doc.Find(".flash")
	require.Equal(t, 1, flash.Length())
	assert.Equal(t, `x" onclick="alert(1)`, flash.AttrOr("data-type", ""))
	_, hasHandler := flash.Attr("onclick")
	assert.False(t, hasHandler)
	assert.NotContains(t, html, "<b>")
}

func TestLoginKeepsUsernameInAttribute(t *testing.T) {
	doc, _ := renderDoc(t, Login(LoginData{
		PageData: layout.PageData{Title: "Login"},
		Username: `"><script>alert(1)</script>`,
		Error:    "Invalid username or password",
	}))

	input := doc.Find("form[action='/login'] input[name='username']")
	require.Equal(t, 1, input.Length())
	assert.Equal(t, `"><script>alert(1)</script>`, input.AttrOr("value", ""))
	assert.Zero(t, doc.Find("script").Length())
	assert.Equal(t, "Invalid username or password", doc.Find("p.error").Text())
	assert.Zero(t, doc.Find("nav .player").Length())
}

func TestDashboardHistoryRows(t *testing.T) {
	played := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	doc, _ := renderDoc(t, Dashboard(DashboardData{
		PageData:    layout.PageData{Title: "Dashboard", Username: "bob"},
		TotalScore:  50,
		GamesPlayed: 2,
		Recent: []*model.GameRecord{
			{Word: "GAME", Difficulty: model.DifficultyEasy, Correct: true, Score: 50, PlayedAt: played},
			{Word: "PYTHON", Difficulty: model.DifficultyMedium, Daily: true, PlayedAt: played},
		},
	}))

	assert.Equal(t, "50", doc.Find("#total-score").Text())
	assert.Equal(t, "2", doc.Find("#games-played").Text())
	assert.Zero(t, doc.Find("p.empty").Length())

	correct := doc.Find("table.history tbody tr.correct td")
	require.Equal(t, 5, correct.Length())
	assert.Equal(t, "GAME", correct.Eq(0).Text())
	assert.Equal(t, "easy", correct.Eq(1).Text())
	assert.Equal(t, "2024-01-01 12:00", correct.Eq(4).Text())

	wrong := doc.Find("table.history tbody tr.wrong td")
	require.Equal(t, 5, wrong.Length())
	assert.Equal(t, "medium (daily)", wrong.Eq(1).Text())
	assert.Equal(t, "wrong", wrong.Eq(2).Text())
	assert.Equal(t, "0", wrong.Eq(3).Text())
}

func TestResultPlayAgain(t *testing.T) {
	doc, _ := renderDoc(t, Result(ResultData{
		PageData: layout.PageData{Title: "Result", Username: "bob"},
		Result:   &model.Result{Word: "PYTHON", Difficulty: model.DifficultyMedium, Score: 0},
	}))
	assert.Equal(t, "Wrong! The word was PYTHON", doc.Find("#message").Text())
	assert.Equal(t, "0", doc.Find("#score").Text())
	assert.Equal(t, "medium", doc.Find("form[action='/game'] input[name='difficulty']").AttrOr("value", ""))

	doc, _ = renderDoc(t, Result(ResultData{
		PageData: layout.PageData{Title: "Result", Username: "bob"},
		Result:   &model.Result{Word: "GAME", Difficulty: model.DifficultyEasy, Correct: true, Daily: true, Score: 50},
	}))
	assert.Equal(t, "Correct! 🎉", doc.Find("#message").Text())
	assert.Zero(t, doc.Find("form[action='/game']").Length())
}
