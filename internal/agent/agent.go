package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"corebell/internal/llm"
	"corebell/internal/logger"
	"corebell/internal/scene"
)

// DefaultModel is used when the model getter returns "".
const DefaultModel = "gpt-4o-mini"

// Handler applies one action. Payload is the action object (e.g. {"action":"add_object", "type":"cube", ...}).
// Returns an error to report to the user; the agent will still process remaining actions.
type Handler func(payload map[string]interface{}) error

// Action is one decoded entry of the model's reply.
type Action map[string]interface{}

// Poster queues work onto the frame loop. *scene.Editor implements it.
type Poster interface {
	Post(fn func())
}

// Agent turns natural language into editor actions via an LLM and a registry of action handlers.
type Agent struct {
	client   llm.Client
	getModel func() string
	handlers map[string]Handler
	log      *logger.Logger
	timeout  time.Duration
}

// New returns an Agent that uses the given LLM client and model getter.
// Register handlers with RegisterHandler before calling Run.
func New(client llm.Client, getModel func() string, log *logger.Logger) *Agent {
	return &Agent{
		client:   client,
		getModel: getModel,
		handlers: make(map[string]Handler),
		log:      log,
		timeout:  90 * time.Second,
	}
}

// RegisterHandler adds a handler for the given action type (e.g. "add_object", "run_cmd").
func (a *Agent) RegisterHandler(actionType string, h Handler) {
	a.handlers[actionType] = h
}

func (a *Agent) model() string {
	if a.getModel == nil {
		return DefaultModel
	}
	if m := a.getModel(); m != "" {
		return m
	}
	return DefaultModel
}

// Plan asks the model for actions. It touches no editor state and may run on any goroutine.
func (a *Agent) Plan(ctx context.Context, userMessage string) ([]Action, error) {
	reply, err := a.client.Complete(ctx, a.model(), buildSystemPrompt(), userMessage)
	if err != nil {
		return nil, err
	}
	actions, err := parseActions(reply)
	if err != nil {
		return nil, fmt.Errorf("LLM response invalid: %w", err)
	}
	return actions, nil
}

// Apply runs each action through its handler and returns a short summary for the terminal log.
// It must run on the frame loop.
func (a *Agent) Apply(actions []Action) string {
	var applied int
	var messages []string
	for i, payload := range actions {
		actionType, _ := payload["action"].(string)
		if actionType == "" {
			messages = append(messages, fmt.Sprintf("action %d: missing action", i+1))
			continue
		}
		h, ok := a.handlers[actionType]
		if !ok {
			messages = append(messages, fmt.Sprintf("action %d: unknown action %q", i+1, actionType))
			continue
		}
		if err := h(payload); err != nil {
			messages = append(messages, fmt.Sprintf("action %d (%s): %v", i+1, actionType, err))
			continue
		}
		applied++
	}
	if applied > 0 && len(messages) == 0 {
		return fmt.Sprintf("Done. Applied %d action(s).", applied)
	}
	if len(messages) > 0 {
		return strings.Join(messages, "; ")
	}
	return "No actions to apply."
}

// Run plans and applies on the calling goroutine.
func (a *Agent) Run(ctx context.Context, userMessage string) (summary string, err error) {
	actions, err := a.Plan(ctx, userMessage)
	if err != nil {
		return "", err
	}
	return a.Apply(actions), nil
}

// Submit plans in the background and posts Apply back to the frame loop.
// The outcome is written to the agent's logger.
func (a *Agent) Submit(p Poster, userMessage string) {
	a.log.Info("thinking (%s)...", a.model())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		actions, err := a.Plan(ctx, userMessage)
		p.Post(func() {
			if err != nil {
				a.log.Error("%v", err)
				return
			}
			a.log.Info("%s", a.Apply(actions))
		})
	}()
}

func buildSystemPrompt() string {
	kinds := strings.Join(scene.KindNames(), "|")
	return "You are a 3D scene editor. The user types natural language; you reply with exactly one JSON object and nothing else. No markdown, no code block, no explanation.\n\n" +
		"Schema:\n" +
		"- add_object: {\"action\":\"add_object\",\"type\":\"" + kinds + "\",\"position\":[x,y,z],\"size\":[sx,sy,sz],\"color\":\"#rrggbb\",\"physics\":true|false} adds one object and selects it. physics false makes it static; omit or true lets it fall.\n" +
		"- add_objects: {\"action\":\"add_objects\",\"type\":\"" + kinds + "|random\",\"count\":N,\"pattern\":\"grid\"|\"line\"|\"random\",\"spacing\":2,\"origin\":[x,y,z],\"size\":[sx,sy,sz],\"scale_min\":[sx,sy,sz],\"scale_max\":[sx,sy,sz],\"color\":\"#rrggbb\",\"physics\":true|false} adds many objects. type \"random\" picks a random kind per object. pattern \"random\" scatters positions. Use scale_min and scale_max together for a random size per object.\n" +
		"- run_cmd: {\"action\":\"run_cmd\",\"args\":[\"subcommand\",\"arg1\",...]} runs an editor command. Args are the tokens that would follow \"cmd \".\n" +
		"- Several actions: {\"actions\":[{...},{...}]}\n\n" +
		"Available run_cmd commands:\n" +
		"- select an object by list index or id: [\"select\",\"2\"], add to the selection: [\"select\",\"3\",\"--add\"], clear it: [\"deselect\"]\n" +
		"- delete: [\"delete\",\"selected\"], [\"delete\",\"random\"] or [\"delete\",\"<index>\"]\n" +
		"- mode: [\"mode\",\"translate\"], [\"mode\",\"rotate\"] or [\"mode\",\"scale\"]\n" +
		"- nudge the selection in the current mode: [\"nudge\",\"y\",\"1.5\"]\n" +
		"- color the selection: [\"color\",\"#ff8800\"]\n" +
		"- physics on the selection: [\"physics\",\"on\"] or [\"physics\",\"off\"]; pause or run the simulation: [\"sim\",\"off\"]\n" +
		"- save or load the scene: [\"save\"], [\"save\",\"castle.json\"], [\"load\",\"castle.json\"], [\"load\",\"https://example.com/scene.json\"]\n" +
		"- clear all objects: [\"clear\"]\n" +
		"- terrain of cubes: [\"terrain\",\"--size\",\"24\",\"--height\",\"4\"]\n" +
		"- grid, fps, memalloc overlays: [\"grid\",\"--hide\"], [\"fps\",\"--show\"], [\"memalloc\",\"--show\"]\n" +
		"- set the AI model: [\"model\",\"llama-3.3-70b-versatile\"]\n" +
		"- show a 3D model file as reference geometry: [\"model-import\",\"assets/models/tree.glb\",\"--at\",\"0,0,5\"]\n" +
		"- music for a mood: [\"mood\",\"happy\"], [\"mood\",\"calm\"] or [\"mood\",\"energetic\"]\n\n" +
		"Rules:\n" +
		"- For \"spawn 100 cubes\" or \"30 spheres spread around\" use ONE add_objects action, never many add_object entries.\n" +
		"- For \"create a city\" or \"buildings with random heights\" use add_objects with type \"cube\", pattern \"grid\", count 20-80, spacing 5-8, scale_min [1,5,1], scale_max [4,25,4], physics false.\n" +
		"- For \"gravity off\", \"no gravity\" or \"static\" use \"physics\": false.\n" +
		"- Only use the types listed above, or random for add_objects.\n" +
		"- Reply with only the JSON object."
}

var fenceRe = regexp.MustCompile("^```\\w*\\n?")

// parseActions extracts the "actions" array from the LLM reply. Tolerates markdown, extra text, and single-action form.
func parseActions(reply string) ([]Action, error) {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = fenceRe.ReplaceAllString(reply, "")
		reply = strings.TrimSuffix(reply, "```")
		reply = strings.TrimSpace(reply)
	}
	// first complete JSON object; braces inside strings are skipped
	start := strings.Index(reply, "{")
	if start < 0 {
		return nil, fmt.Errorf("no JSON object in response")
	}
	reply = reply[start:]
	depth, end := 0, -1
	inString, escaped := false, false
	for i, c := range reply {
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				end = i + 1
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil, fmt.Errorf("unbalanced JSON braces")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(reply[:end]), &raw); err != nil {
		return nil, err
	}
	switch acts := raw["actions"].(type) {
	case []interface{}:
		out := make([]Action, 0, len(acts))
		for i, v := range acts {
			m, ok := v.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("action %d is not an object", i+1)
			}
			out = append(out, m)
		}
		return out, nil
	case map[string]interface{}:
		return []Action{acts}, nil
	}
	if _, ok := raw["action"]; ok {
		return []Action{raw}, nil
	}
	return nil, fmt.Errorf("missing actions array (reply had no \"actions\" or \"action\" object)")
}
