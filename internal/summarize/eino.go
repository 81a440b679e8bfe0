// Package summarize turns a paper's extracted text into a fixed-schema
// structured summary via a composed LLM flow.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/cloudwego/eino/compose"

	"paperdesk/internal/ai"
)

// maxTextWindow bounds how much extracted text is shipped to the model.
const maxTextWindow = 30000

const analysisPrompt = `Roleplay: You are a professional paper analysis expert. You quickly analyze the truncated paper text the user provides.
Task: Parse the paper fragment and produce a comprehensive structured summary:
1. Extract the following key fields (leave a field as an empty string "" when the fragment has no relevant information):
- Abstract core one-sentence summary (abstract_summary)
- Research problem/objective (research_problem)
- Core contributions (core_contribution, list 1-5 items)
- Proposed method/model name (method_name)
- Method innovation points (method_innovation, list 1-5 items)
- Datasets (datasets, comma-separated)
- Main experimental results (experimental_results, key metric values)
- Ablation study conclusions (ablation_study, empty if none)
- Limitations (limitations, empty if not mentioned)
- Conclusion and future work (conclusion_and_future_work)
2. Output a single flat JSON object, for example: {"abstract_summary": "", ...}
3. Do not output anything except the JSON object.
4. If the fragment is insufficient to fill any field, output an empty object {}.
5. The output must be valid, directly parsable JSON; list fields are strings like "item1; item2".`

// Analysis is the ten-field structured summary. Unfillable fields are empty
// strings, never omitted.
type Analysis struct {
	AbstractSummary         string `json:"abstract_summary"`
	ResearchProblem         string `json:"research_problem"`
	CoreContribution        string `json:"core_contribution"`
	MethodName              string `json:"method_name"`
	MethodInnovation        string `json:"method_innovation"`
	Datasets                string `json:"datasets"`
	ExperimentalResults     string `json:"experimental_results"`
	AblationStudy           string `json:"ablation_study"`
	Limitations             string `json:"limitations"`
	ConclusionAndFutureWork string `json:"conclusion_and_future_work"`
}

type Input struct {
	Text string
	LLM  *ai.Client
}

type cleanedInput struct {
	Text string
	LLM  *ai.Client
}

type Summarizer struct {
	runnable compose.Runnable[Input, Analysis]
}

func NewSummarizer() (*Summarizer, error) {
	graph := compose.NewGraph[Input, Analysis]()
	if err := graph.AddLambdaNode("cleaner", compose.InvokableLambda(cleanerNode)); err != nil {
		return nil, err
	}
	if err := graph.AddLambdaNode("extractor", compose.InvokableLambda(extractorNode)); err != nil {
		return nil, err
	}
	if err := graph.AddLambdaNode("formatter", compose.InvokableLambda(formatterNode)); err != nil {
		return nil, err
	}
	if err := graph.AddEdge(compose.START, "cleaner"); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("cleaner", "extractor"); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("extractor", "formatter"); err != nil {
		return nil, err
	}
	if err := graph.AddEdge("formatter", compose.END); err != nil {
		return nil, err
	}

	runnable, err := graph.Compile(context.Background(), compose.WithGraphName("paper_summary"))
	if err != nil {
		return nil, err
	}

	return &Summarizer{runnable: runnable}, nil
}

func (s *Summarizer) Summarize(ctx context.Context, input Input) (Analysis, error) {
	if s == nil || s.runnable == nil {
		return Analysis{}, errors.New("summarize graph not initialized")
	}
	return s.runnable.Invoke(ctx, input)
}

func cleanerNode(ctx context.Context, input Input) (cleanedInput, error) {
	text := strings.TrimSpace(input.Text)
	if len(text) > maxTextWindow {
		text = text[:maxTextWindow]
	}
	return cleanedInput{Text: text, LLM: input.LLM}, nil
}

func extractorNode(ctx context.Context, input cleanedInput) (Analysis, error) {
	if input.LLM == nil || !input.LLM.Enabled() {
		return Analysis{}, errors.New("llm not configured")
	}

	for attempt := 0; attempt < 5; attempt++ {
		if ctx.Err() != nil {
			return Analysis{}, ctx.Err()
		}
		raw, err := input.LLM.ChatJSON(ctx, analysisPrompt, input.Text, 0.2)
		if err != nil {
			continue
		}
		obj := ai.ExtractJSON(ai.StripFences(raw))
		if obj == "" {
			continue
		}
		var out Analysis
		if err := json.Unmarshal([]byte(obj), &out); err != nil {
			continue
		}
		return out, nil
	}
	// Exhaustion contracts to an empty summary, not an error.
	return Analysis{}, nil
}

func formatterNode(ctx context.Context, a Analysis) (Analysis, error) {
	a.AbstractSummary = strings.TrimSpace(a.AbstractSummary)
	a.ResearchProblem = strings.TrimSpace(a.ResearchProblem)
	a.CoreContribution = strings.TrimSpace(a.CoreContribution)
	a.MethodName = strings.TrimSpace(a.MethodName)
	a.MethodInnovation = strings.TrimSpace(a.MethodInnovation)
	a.Datasets = strings.TrimSpace(a.Datasets)
	a.ExperimentalResults = strings.TrimSpace(a.ExperimentalResults)
	a.AblationStudy = strings.TrimSpace(a.AblationStudy)
	a.Limitations = strings.TrimSpace(a.Limitations)
	a.ConclusionAndFutureWork = strings.TrimSpace(a.ConclusionAndFutureWork)
	return a, nil
}
