package ore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"time"
)

// Decoder turns a generic JSON value, as produced by encoding/json into an
// `any`, into plugin entities. Every field of every entity is mandatory and
// the first problem aborts the whole batch.
//
// A Decoder holds no mutable state and is safe for concurrent use.
type Decoder struct {
	dates DateParser
}

// NewDecoder returns a Decoder that reads timestamps with dates. A nil
// parser selects DefaultDateParser.
func NewDecoder(dates DateParser) *Decoder {
	if dates == nil {
		dates = DefaultDateParser
	}
	return &Decoder{dates: dates}
}

// DecodeJSON parses body and decodes the plugin array it holds. Numbers are
// kept as json.Number so large counters do not lose precision.
func (d *Decoder) DecodeJSON(body []byte) ([]Plugin, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DecodeError{Reason: "invalid JSON", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &DecodeError{Reason: "trailing data after JSON value"}
	}

	return d.Decode(v)
}

// Decode walks v, which must be an array of plugin objects.
func (d *Decoder) Decode(v any) ([]Plugin, error) {
	items, err := asArray(v, "")
	if err != nil {
		return nil, err
	}

	plugins := make([]Plugin, 0, len(items))
	for i, item := range items {
		p, err := d.decodePlugin(item, indexPath("", i))
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, p)
	}

	return plugins, nil
}

func (d *Decoder) decodePlugin(v any, path string) (Plugin, error) {
	var p Plugin

	obj, err := asObject(v, path)
	if err != nil {
		return p, err
	}

	if p.PluginID, err = obj.str("pluginId"); err != nil {
		return p, err
	}
	if p.CreatedAt, err = d.date(obj, "createdAt"); err != nil {
		return p, err
	}
	if p.Name, err = obj.str("name"); err != nil {
		return p, err
	}
	if p.Owner, err = obj.str("owner"); err != nil {
		return p, err
	}
	if p.Description, err = obj.str("description"); err != nil {
		return p, err
	}
	if p.Href, err = obj.str("href"); err != nil {
		return p, err
	}

	members, membersPath, err := obj.array("members")
	if err != nil {
		return p, err
	}
	p.Members = make([]User, 0, len(members))
	for i, m := range members {
		u, err := decodeUser(m, indexPath(membersPath, i))
		if err != nil {
			return p, err
		}
		p.Members = append(p.Members, u)
	}

	channels, channelsPath, err := obj.array("channels")
	if err != nil {
		return p, err
	}
	p.Channels = make([]Channel, 0, len(channels))
	for i, c := range channels {
		ch, err := decodeChannel(c, indexPath(channelsPath, i))
		if err != nil {
			return p, err
		}
		p.Channels = append(p.Channels, ch)
	}

	recommended, recommendedPath, err := obj.field("recommended")
	if err != nil {
		return p, err
	}
	if p.Recommended, err = d.decodeVersion(recommended, recommendedPath); err != nil {
		return p, err
	}

	category, categoryPath, err := obj.field("category")
	if err != nil {
		return p, err
	}
	categoryObj, err := asObject(category, categoryPath)
	if err != nil {
		return p, err
	}
	title, err := categoryObj.str("title")
	if err != nil {
		return p, err
	}
	if p.Category, err = CategoryFromTitle(title); err != nil {
		return p, &DecodeError{
			Path:   fieldPath(categoryPath, "title"),
			Reason: err.Error(),
			Err:    err,
		}
	}

	if p.Views, err = obj.count("views"); err != nil {
		return p, err
	}
	if p.Downloads, err = obj.count("downloads"); err != nil {
		return p, err
	}
	if p.Stars, err = obj.count("stars"); err != nil {
		return p, err
	}

	return p, nil
}

func decodeUser(v any, path string) (User, error) {
	var u User

	obj, err := asObject(v, path)
	if err != nil {
		return u, err
	}

	if u.UserID, err = obj.count("userId"); err != nil {
		return u, err
	}
	if u.Name, err = obj.str("name"); err != nil {
		return u, err
	}

	roles, rolesPath, err := obj.array("roles")
	if err != nil {
		return u, err
	}
	u.Roles = make([]string, 0, len(roles))
	for i, r := range roles {
		role, err := asString(r, indexPath(rolesPath, i))
		if err != nil {
			return u, err
		}
		u.Roles = append(u.Roles, role)
	}

	if u.HeadRole, err = obj.str("headRole"); err != nil {
		return u, err
	}

	return u, nil
}

func decodeChannel(v any, path string) (Channel, error) {
	var c Channel

	obj, err := asObject(v, path)
	if err != nil {
		return c, err
	}

	if c.Name, err = obj.str("name"); err != nil {
		return c, err
	}
	if c.Color, err = obj.str("color"); err != nil {
		return c, err
	}

	return c, nil
}

func (d *Decoder) decodeVersion(v any, path string) (Version, error) {
	var ver Version

	obj, err := asObject(v, path)
	if err != nil {
		return ver, err
	}

	if ver.ID, err = obj.count("id"); err != nil {
		return ver, err
	}
	if ver.CreatedAt, err = d.date(obj, "createdAt"); err != nil {
		return ver, err
	}
	if ver.Name, err = obj.str("name"); err != nil {
		return ver, err
	}

	deps, depsPath, err := obj.array("dependencies")
	if err != nil {
		return ver, err
	}
	ver.Dependencies = make([]Dependency, 0, len(deps))
	for i, dv := range deps {
		dep, err := decodeDependency(dv, indexPath(depsPath, i))
		if err != nil {
			return ver, err
		}
		ver.Dependencies = append(ver.Dependencies, dep)
	}

	if ver.PluginID, err = obj.str("pluginId"); err != nil {
		return ver, err
	}

	channel, channelPath, err := obj.field("channel")
	if err != nil {
		return ver, err
	}
	if ver.Channel, err = decodeChannel(channel, channelPath); err != nil {
		return ver, err
	}

	if ver.FileSize, err = obj.count("fileSize"); err != nil {
		return ver, err
	}

	return ver, nil
}

func decodeDependency(v any, path string) (Dependency, error) {
	var dep Dependency

	obj, err := asObject(v, path)
	if err != nil {
		return dep, err
	}

	if dep.PluginID, err = obj.str("pluginId"); err != nil {
		return dep, err
	}
	if dep.Version, err = obj.str("version"); err != nil {
		return dep, err
	}

	return dep, nil
}

func (d *Decoder) date(obj object, name string) (t time.Time, err error) {
	s, err := obj.str(name)
	if err != nil {
		return t, err
	}

	t, err = d.dates.ParseDate(s)
	if err != nil {
		return t, &DecodeError{
			Path:   fieldPath(obj.path, name),
			Reason: err.Error(),
			Err:    err,
		}
	}

	return t, nil
}

// object is a JSON object together with its location in the payload.
type object struct {
	m    map[string]any
	path string
}

func (o object) field(name string) (any, string, error) {
	path := fieldPath(o.path, name)
	v, ok := o.m[name]
	if !ok {
		return nil, path, &DecodeError{Path: path, Reason: "missing field"}
	}
	return v, path, nil
}

func (o object) str(name string) (string, error) {
	v, path, err := o.field(name)
	if err != nil {
		return "", err
	}
	return asString(v, path)
}

func (o object) array(name string) ([]any, string, error) {
	v, path, err := o.field(name)
	if err != nil {
		return nil, path, err
	}
	items, err := asArray(v, path)
	return items, path, err
}

func (o object) count(name string) (int64, error) {
	v, path, err := o.field(name)
	if err != nil {
		return 0, err
	}
	return asCount(v, path)
}

func asObject(v any, path string) (object, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return object{}, typeMismatch(path, "object", v)
	}
	return object{m: m, path: path}, nil
}

func asArray(v any, path string) ([]any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, typeMismatch(path, "array", v)
	}
	return items, nil
}

func asString(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(path, "string", v)
	}
	return s, nil
}

// asCount accepts a non-negative integral JSON number.
func asCount(v any, path string) (int64, error) {
	var n int64

	switch num := v.(type) {
	case json.Number:
		i, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil {
			// 1e2 and 10.0 are still integral
			var ok bool
			if i, ok = integralNumber(num.String()); !ok {
				return 0, &DecodeError{Path: path, Reason: fmt.Sprintf("expected integer, got %s", num), Err: err}
			}
		}
		n = i
	case float64:
		if num != math.Trunc(num) || math.IsInf(num, 0) || num > math.MaxInt64 || num < math.MinInt64 {
			return 0, &DecodeError{Path: path, Reason: fmt.Sprintf("expected integer, got %v", num)}
		}
		n = int64(num)
	default:
		return 0, typeMismatch(path, "number", v)
	}

	if n < 0 {
		return 0, &DecodeError{Path: path, Reason: fmt.Sprintf("expected non-negative integer, got %d", n)}
	}

	return n, nil
}

// integralNumber reads a JSON number in decimal or exponent form that holds
// an exact int64 value.
func integralNumber(s string) (int64, bool) {
	f, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
	if err != nil || !f.IsInt() {
		return 0, false
	}
	i, acc := f.Int64()
	return i, acc == big.Exact
}

func typeMismatch(path, want string, got any) *DecodeError {
	return &DecodeError{
		Path:   path,
		Reason: fmt.Sprintf("expected %s, got %s", want, jsonTypeName(got)),
	}
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func fieldPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
