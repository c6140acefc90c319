package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/polyglotkit/polyglot/controller"
)

type DetectInput struct {
	Text string `json:"text" jsonschema:"the text whose language should be detected"`
}

type DetectOutput struct {
	Language *string `json:"language" jsonschema:"the detected language, null when undetermined"`
}

type DetectMixedOutput struct {
	Spans []controller.SpanItem `json:"spans" jsonschema:"per-language spans of the text ordered by start offset"`
}

type ConfidenceInput struct {
	Text     string `json:"text" jsonschema:"the text to score"`
	Language string `json:"language" jsonschema:"optional language name; when empty all configured languages are ranked"`
}

type ConfidenceOutput struct {
	Values []controller.ConfidenceItem `json:"values" jsonschema:"confidence values ordered by descending confidence"`
}

type ListLanguagesInput struct {
	Filter string `json:"filter" jsonschema:"optional filter: all, spoken, arabic, cyrillic, devanagari, latin, unique"`
}

type ListLanguagesOutput struct {
	Languages []string `json:"languages" jsonschema:"sorted canonical language names"`
}

type PolyglotMCP struct {
	client   *http.Client
	endpoint url.URL
}

func (p PolyglotMCP) getUrl(relativePath string, parameters map[string]string) (*url.URL, error) {
	u, err := url.Parse(relativePath)
	if err != nil {
		return nil, err
	}
	u = p.endpoint.ResolveReference(u)
	if parameters != nil {
		q := u.Query()
		for k, v := range parameters {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

func (p PolyglotMCP) postJson(ctx context.Context, relativePath string, payload any, result any) error {
	u, err := p.getUrl(relativePath, nil)
	if err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(result)
}

func (p PolyglotMCP) DetectLanguage(ctx context.Context, req *mcp.CallToolRequest, input DetectInput) (*mcp.CallToolResult, DetectOutput, error) {
	var result DetectOutput
	if err := p.postJson(ctx, "/api/v1/detect", controller.TextParams{Text: input.Text}, &result); err != nil {
		return nil, DetectOutput{}, err
	}
	return nil, result, nil
}

func (p PolyglotMCP) DetectMixedLanguages(ctx context.Context, req *mcp.CallToolRequest, input DetectInput) (*mcp.CallToolResult, DetectMixedOutput, error) {
	var result DetectMixedOutput
	if err := p.postJson(ctx, "/api/v1/detect/mixed", controller.TextParams{Text: input.Text}, &result); err != nil {
		return nil, DetectMixedOutput{}, err
	}
	return nil, result, nil
}

func (p PolyglotMCP) LanguageConfidence(ctx context.Context, req *mcp.CallToolRequest, input ConfidenceInput) (*mcp.CallToolResult, ConfidenceOutput, error) {
	if input.Language != "" {
		var single struct {
			Language   string  `json:"language"`
			Confidence float64 `json:"confidence"`
		}
		err := p.postJson(ctx, "/api/v1/confidence/language", controller.TextWithLanguageParams{Text: input.Text, Language: input.Language}, &single)
		if err != nil {
			return nil, ConfidenceOutput{}, err
		}
		return nil, ConfidenceOutput{Values: []controller.ConfidenceItem{{Language: single.Language, Confidence: single.Confidence}}}, nil
	}
	var result ConfidenceOutput
	if err := p.postJson(ctx, "/api/v1/confidence", controller.TextParams{Text: input.Text}, &result); err != nil {
		return nil, ConfidenceOutput{}, err
	}
	return nil, result, nil
}

func (p PolyglotMCP) ListLanguages(ctx context.Context, req *mcp.CallToolRequest, input ListLanguagesInput) (*mcp.CallToolResult, ListLanguagesOutput, error) {
	listUrl, err := p.getUrl("/api/v1/languages", map[string]string{"filter": input.Filter})
	if err != nil {
		return nil, ListLanguagesOutput{}, err
	}
	request := &http.Request{
		Method: http.MethodGet,
		URL:    listUrl,
	}
	resp, err := p.client.Do(request)
	if err != nil {
		return nil, ListLanguagesOutput{}, err
	}
	defer resp.Body.Close()
	var result ListLanguagesOutput
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, ListLanguagesOutput{}, err
	}
	return nil, result, nil
}

func NewMcpCommand() *cobra.Command {
	var polyglotEndpoint string

	mcpCommand := &cobra.Command{
		Use:   "mcp",
		Short: "Starting MCP server",
		Run: func(cmd *cobra.Command, args []string) {
			parsedURL, err := url.Parse(polyglotEndpoint)
			if err != nil {
				logger.Fatalf("Invalid Polyglot endpoint URL: %v", err)
			}
			p := PolyglotMCP{
				client:   http.DefaultClient,
				endpoint: *parsedURL,
			}
			server := mcp.NewServer(&mcp.Implementation{Name: "polyglot-mcp", Title: "MCP server for detecting natural languages via Polyglot", Version: "v1.0.0"}, nil)
			mcp.AddTool(server, &mcp.Tool{Name: "detect_language", Description: "Detect the most likely language of a text"}, p.DetectLanguage)
			mcp.AddTool(server, &mcp.Tool{Name: "detect_mixed_languages", Description: "Split a mixed-language text into per-language spans"}, p.DetectMixedLanguages)
			mcp.AddTool(server, &mcp.Tool{Name: "language_confidence", Description: "Compute confidence values for a text, either ranked over all configured languages or for one given language"}, p.LanguageConfidence)
			mcp.AddTool(server, &mcp.Tool{Name: "list_languages", Description: "List supported languages, optionally filtered by script or spoken status"}, p.ListLanguages)
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				logger.Fatal(err)
			}
		},
	}
	mcpCommand.Flags().StringVarP(
		&polyglotEndpoint,
		"endpoint",
		"e", "http://localhost:8080",
		"Polyglot server endpoint URL",
	)
	return mcpCommand
}
