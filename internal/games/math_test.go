package games

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyngdoh/curiouskids/internal/llm"
	"github.com/lyngdoh/curiouskids/internal/score"
)

func TestParseQuestion(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Question
		wantErr error
	}{
		{
			name: "same line",
			text: "Question: 2+2 Answer: 4",
			want: Question{Text: "2+2", Answer: "4"},
		},
		{
			name: "separate lines",
			text: "Question: What is 6 x 7?\nAnswer: 42",
			want: Question{Text: "What is 6 x 7?", Answer: "42"},
		},
		{
			name: "surrounding chatter",
			text: "Sure! Here you go.\n\nQuestion: What is 12 / 3?  \nAnswer: 4  \nHave fun!",
			want: Question{Text: "What is 12 / 3?", Answer: "4"},
		},
		{
			name:    "answer leaked",
			text:    "Question: The answer is 4 Answer: 4",
			wantErr: ErrAnswerLeaked,
		},
		{
			name:    "missing answer marker",
			text:    "Question: What is 1 + 1?",
			wantErr: ErrMalformed,
		},
		{
			name:    "missing question marker",
			text:    "Answer: 2",
			wantErr: ErrMalformed,
		},
		{
			name:    "empty answer",
			text:    "Question: What is 1 + 1?\nAnswer:  ",
			wantErr: ErrMalformed,
		},
		{
			name:    "lowercase markers",
			text:    "question: 1 + 1 answer: 2",
			wantErr: ErrMalformed,
		},
		{
			name:    "empty",
			text:    "",
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuestion(tt.text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeakCheckIsCaseSensitive(t *testing.T) {
	q, err := ParseQuestion("Question: Spell CAT backwards Answer: tac")
	require.NoError(t, err)
	assert.Equal(t, "tac", q.Answer)
}

func TestOperations(t *testing.T) {
	assert.Equal(t, "addition_score", Addition.ScoreKey())
	assert.Equal(t, score.DivisionKey, Division.ScoreKey())
	assert.Equal(t, "Multiplication", Multiplication.Title())
	assert.Contains(t, Subtraction.Prompt(), "simple subtraction question")
	assert.Contains(t, Subtraction.Prompt(), "'Question: ... Answer: ...'")

	op, err := ParseOperation(" Division ")
	require.NoError(t, err)
	assert.Equal(t, Division, op)

	_, err = ParseOperation("modulo")
	assert.Error(t, err)
}

func startMath(t *testing.T, mock *llm.MockProvider, keeper *score.Keeper, opts ...Option) *MathGame {
	t.Helper()
	g := NewMathGame(mock, keeper, Addition, opts...)
	t.Cleanup(g.Close)
	require.NoError(t, g.Start(context.Background()))
	g.Wait()
	return g
}

func TestMathAcceptsValidQuestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Question: 2+2 Answer: 4"})
	g := startMath(t, mock, newKeeper(t))

	v := g.View()
	assert.Equal(t, PhaseReady, v.Phase)
	assert.Equal(t, "2+2", v.Question)
	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, Addition.Prompt(), mock.LastPrompt())
}

func TestMathRefetchesUnusableResponses(t *testing.T) {
	tests := []struct {
		name  string
		first llm.MockResponse
	}{
		{"leaked answer", llm.MockResponse{Text: "Question: The answer is 4 Answer: 4"}},
		{"missing answer", llm.MockResponse{Text: "Question: What is 2 + 2?"}},
		{"provider error", llm.MockResponse{Err: errors.New("service unavailable")}},
		{"empty text", llm.MockResponse{Text: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.first, llm.MockResponse{Text: "Question: 3+3 Answer: 6"})
			g := startMath(t, mock, newKeeper(t))

			v := g.View()
			assert.Equal(t, PhaseReady, v.Phase)
			assert.Equal(t, "3+3", v.Question)
			assert.Equal(t, 2, mock.CallCount())
		})
	}
}

func TestMathGivesUpAfterMaxRefetches(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Responder = func(llm.Request) llm.MockResponse {
		return llm.MockResponse{Text: "no markers here"}
	}
	g := startMath(t, mock, newKeeper(t), WithMaxRefetches(2))

	v := g.View()
	assert.Equal(t, PhaseFailed, v.Phase)
	assert.Contains(t, v.Message, ErrGaveUp.Error())
	assert.Equal(t, 3, mock.CallCount())

	// Next starts a fresh budget.
	mock.AddResponse(llm.MockResponse{Text: "Question: 1+1 Answer: 2"})
	g.Next()
	g.Wait()
	assert.Equal(t, PhaseReady, g.View().Phase)
	assert.Equal(t, 4, mock.CallCount())
}

func TestMathCorrectAnswerIncrementsAndPersists(t *testing.T) {
	s := openStore(t)
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Question: What is 3 + 5?\nAnswer: 8"})
	g := startMath(t, mock, score.NewKeeper(s.ScoreRepo()))

	correct, err := g.Submit(context.Background(), " 8 ")
	require.NoError(t, err)
	assert.True(t, correct)

	v := g.View()
	assert.Equal(t, PhaseFeedback, v.Phase)
	assert.Equal(t, CorrectTitle, v.Title)
	assert.Equal(t, CorrectMessage, v.Message)
	assert.Equal(t, 1, v.Score)

	// A fresh keeper on the same store sees the saved score.
	saved, err := score.NewKeeper(s.ScoreRepo()).Load(context.Background(), Addition.ScoreKey())
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
}

func TestMathIncorrectAnswerKeepsScore(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Question: What is 3 + 5?\nAnswer: 8"})
	g := startMath(t, mock, newKeeper(t))

	correct, err := g.Submit(context.Background(), "9")
	require.NoError(t, err)
	assert.False(t, correct)

	v := g.View()
	assert.Equal(t, PhaseFeedback, v.Phase)
	assert.Equal(t, IncorrectTitle, v.Title)
	assert.Equal(t, IncorrectMessage, v.Message)
	assert.Zero(t, v.Score)
}

func TestMathSubmitIgnoredWithoutQuestion(t *testing.T) {
	hold := make(chan struct{})
	defer close(hold)
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Question: 1+1 Answer: 2", Hold: hold})
	g := NewMathGame(mock, newKeeper(t), Addition)
	defer g.Close()
	require.NoError(t, g.Start(context.Background()))

	correct, err := g.Submit(context.Background(), "2")
	require.NoError(t, err)
	assert.False(t, correct)
	assert.Zero(t, g.View().Score)
}

func TestMathStartLoadsSavedScore(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.ScoreRepo().Set(context.Background(), Addition.ScoreKey(), 7))

	mock := llm.NewMockProvider(llm.MockResponse{Text: "Question: 2+2 Answer: 4"})
	g := startMath(t, mock, score.NewKeeper(s.ScoreRepo()))
	assert.Equal(t, 7, g.View().Score)

	_, err := g.Submit(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, 8, g.View().Score)
}

func TestMathNextFetchesNewQuestion(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Question: 2+2 Answer: 4"},
		llm.MockResponse{Text: "Question: 5+1 Answer: 6"},
	)
	g := startMath(t, mock, newKeeper(t))

	_, err := g.Submit(context.Background(), "4")
	require.NoError(t, err)

	g.Next()
	g.Wait()

	v := g.View()
	assert.Equal(t, PhaseReady, v.Phase)
	assert.Equal(t, "5+1", v.Question)
	assert.Empty(t, v.Title)
	assert.Equal(t, 1, v.Score)
}

func TestMathSubscribersSeePhasesInOrder(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "garbage"},
		llm.MockResponse{Text: "Question: 2+2 Answer: 4"},
	)
	g := NewMathGame(mock, newKeeper(t), Addition)
	defer g.Close()

	var (
		mu     sync.Mutex
		phases []Phase
	)
	g.Subscribe(func(v MathView) {
		mu.Lock()
		defer mu.Unlock()
		phases = append(phases, v.Phase)
	})

	require.NoError(t, g.Start(context.Background()))
	g.Wait()

	mu.Lock()
	defer mu.Unlock()
	// Score load, first Loading, refetch Loading, Ready.
	assert.Equal(t, []Phase{PhaseIdle, PhaseLoading, PhaseLoading, PhaseReady}, phases)
}

func TestMathDismissAfterIncorrectAsksSameQuestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Question: What is 3 + 5?\nAnswer: 8"})
	g := startMath(t, mock, newKeeper(t))

	_, err := g.Submit(context.Background(), "9")
	require.NoError(t, err)
	g.Dismiss()

	v := g.View()
	assert.Equal(t, PhaseReady, v.Phase)
	assert.Equal(t, "What is 3 + 5?", v.Question)
	assert.Empty(t, v.Message)
	assert.Equal(t, 1, mock.CallCount())

	correct, err := g.Submit(context.Background(), "8")
	require.NoError(t, err)
	assert.True(t, correct)
}

func TestMathDismissAfterCorrectFetchesNext(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Question: What is 3 + 5?\nAnswer: 8"},
		llm.MockResponse{Text: "Question: What is 2 + 2?\nAnswer: 4"},
	)
	g := startMath(t, mock, newKeeper(t))

	_, err := g.Submit(context.Background(), "8")
	require.NoError(t, err)
	g.Dismiss()
	g.Wait()

	v := g.View()
	assert.Equal(t, PhaseReady, v.Phase)
	assert.Equal(t, "What is 2 + 2?", v.Question)
	assert.Equal(t, 1, v.Score)
	assert.Equal(t, 2, mock.CallCount())
}

func TestMathDismissOutsideFeedbackIsNoop(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Question: What is 3 + 5?\nAnswer: 8"})
	g := startMath(t, mock, newKeeper(t))

	g.Dismiss()
	assert.Equal(t, PhaseReady, g.View().Phase)
	assert.Equal(t, 1, mock.CallCount())
}
