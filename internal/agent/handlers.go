package agent

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"corebell/internal/commands"
	"corebell/internal/scene"
)

// RegisterSceneHandlers registers add_object, add_objects and run_cmd handlers that act on ed and reg.
func RegisterSceneHandlers(a *Agent, ed *scene.Editor, reg *commands.Registry) {
	a.RegisterHandler("add_object", func(payload map[string]interface{}) error {
		typ, _ := payload["type"].(string)
		if typ == "" {
			return fmt.Errorf("missing type")
		}
		k, err := scene.ParseKind(typ)
		if err != nil {
			return err
		}
		o, err := objectOptions(payload, "position")
		if err != nil {
			return err
		}
		_, err = ed.Add(k, o)
		return err
	})
	a.RegisterHandler("add_objects", func(payload map[string]interface{}) error {
		typ, _ := payload["type"].(string)
		if typ == "" {
			return fmt.Errorf("missing type")
		}
		var req scene.SpawnRequest
		if typ != "random" && typ != "any" {
			k, err := scene.ParseKind(typ)
			if err != nil {
				return err
			}
			req.Kinds = []scene.Kind{k}
		}
		req.Count = 1
		if n, ok := payload["count"].(float64); ok && n >= 1 {
			req.Count = int(n)
		}
		if s, err := parseFloat1(payload["spacing"]); err == nil && s > 0 {
			req.Spacing = s
		}
		if v, err := parseFloat3(payload["origin"]); err == nil {
			req.Origin = v
		}
		pattern, _ := payload["pattern"].(string)
		p, err := scene.ParsePattern(pattern)
		if err != nil {
			return err
		}
		req.Pattern = p
		if lo, err := parseFloat3(payload["scale_min"]); err == nil {
			if hi, err := parseFloat3(payload["scale_max"]); err == nil {
				req.ScaleMin, req.ScaleMax = &lo, &hi
			}
		}
		o, err := objectOptions(payload)
		if err != nil {
			return err
		}
		req.Options = o
		_, err = ed.Spawn(req, nil)
		return err
	})
	a.RegisterHandler("run_cmd", func(payload map[string]interface{}) error {
		args, ok := payload["args"].([]interface{})
		if !ok || len(args) == 0 {
			return fmt.Errorf("missing or empty args")
		}
		strs := make([]string, 0, len(args))
		for _, v := range args {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("args must be strings")
			}
			strs = append(strs, s)
		}
		return reg.Execute(strs)
	})
}

// objectOptions reads size (or scale), color and physics from an action payload.
// Keys in extra are also decoded as options (e.g. "position").
func objectOptions(payload map[string]interface{}, extra ...string) (scene.Options, error) {
	m := make(map[string]interface{})
	for _, k := range append([]string{"size", "color"}, extra...) {
		if v, ok := payload[k]; ok && v != nil {
			m[k] = v
		}
	}
	if _, ok := m["size"]; !ok {
		if v, ok := payload["scale"]; ok {
			m["size"] = v
		}
	}
	o, err := scene.OptionsFromMap(m)
	if err != nil {
		return o, err
	}
	if !parseBoolOpt(payload["physics"], true) {
		o.Mass = scene.Float(0)
	}
	return o, nil
}

func parseBoolOpt(v interface{}, defaultVal bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultVal
}

func parseFloat1(v interface{}) (float32, error) {
	switch n := v.(type) {
	case float64:
		return float32(n), nil
	case float32:
		return n, nil
	}
	return 0, fmt.Errorf("expected number")
}

func parseFloat3(v interface{}) (mgl32.Vec3, error) {
	var out mgl32.Vec3
	arr, ok := v.([]interface{})
	if !ok || len(arr) < 3 {
		return out, fmt.Errorf("expected [x,y,z]")
	}
	for i := 0; i < 3; i++ {
		n, err := parseFloat1(arr[i])
		if err != nil {
			return out, fmt.Errorf("[%d] not a number", i)
		}
		out[i] = n
	}
	return out, nil
}
