package app

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jfk9w-go/flu"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"

	"imagesgallery/core/files"
	"imagesgallery/core/gallery"
	"imagesgallery/core/storage"
)

// EnvironPrefix is the prefix of environment variables overriding config keys,
// for example IMAGESGALLERY_SERVER_ADDRESS overrides server.address.
const EnvironPrefix = "IMAGESGALLERY_"

type Config struct {
	Database string
	Logging  struct {
		Level  string
		Format string
	}

	Server struct {
		Address  string
		NotFound string
		Assets   string
	}

	Debug struct {
		Timer bool
	}

	Files struct {
		BaseURL  string
		Fallback string
		Variants map[string]string
	}

	Captions struct {
		RecordType string
		Elements   []int64
	}

	Gallery GalleryConfig

	Link struct {
		Pattern string
	}

	Language     string
	Translations map[string]map[string]string
}

type GalleryConfig struct {
	Wrapper            map[string]string
	DisableWrapper     bool
	ItemWrapper        map[string]string
	DisableItemWrapper bool
	Link               map[string]string
	Image              map[string]string
	Variant            string
	LinkMode           string
	Kind               string
	LazyLoad           *bool
	Script             *bool
}

func (c GalleryConfig) Options() *gallery.Options {
	options := gallery.DefaultOptions()
	if c.Wrapper != nil {
		options.Wrapper = attrs(c.Wrapper)
	}

	if c.DisableWrapper {
		options.Wrapper = nil
	}

	if c.ItemWrapper != nil {
		options.ItemWrapper = attrs(c.ItemWrapper)
	}

	if c.DisableItemWrapper {
		options.ItemWrapper = nil
	}

	options.Link = attrs(c.Link)
	options.Image = attrs(c.Image)
	if c.Variant != "" {
		options.Variant = c.Variant
	}

	if c.LinkMode != "" {
		options.LinkMode = c.LinkMode
	}

	if c.Kind != "" {
		options.Kind = c.Kind
	}

	if c.LazyLoad != nil {
		options.LazyLoad = *c.LazyLoad
	}

	if c.Script != nil {
		options.Script = *c.Script
	}

	return options
}

// attrs orders attributes by name so that output does not depend on map iteration.
func attrs(values map[string]string) gallery.Attrs {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	result := make(gallery.Attrs, 0, len(keys))
	for _, key := range keys {
		result = result.With(key, values[key])
	}

	return result
}

func (c *Config) FileStore() *files.WebStore {
	return &files.WebStore{
		BaseURL:  c.Files.BaseURL,
		Variants: c.Files.Variants,
		Fallback: c.Files.Fallback,
	}
}

func (c *Config) CaptionStore(texts storage.TextStorage) *storage.Captions {
	return &storage.Captions{
		Storage:    texts,
		RecordType: c.Captions.RecordType,
		Elements:   c.Captions.Elements,
	}
}

func (c *Config) LinkRenderer() gallery.LinkRenderer {
	if c.Link.Pattern == "" {
		return nil
	}

	return gallery.PatternLinker{Pattern: c.Link.Pattern}
}

func (c *Config) Translator() (gallery.Translator, error) {
	if c.Language == "" && len(c.Translations) == 0 {
		return gallery.Sprintf, nil
	}

	tag := language.English
	if c.Language != "" {
		var err error
		tag, err = language.Parse(c.Language)
		if err != nil {
			return nil, errors.Wrapf(err, "parse language %s", c.Language)
		}
	}

	messages := catalog.NewBuilder()
	for lang, translations := range c.Translations {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, errors.Wrapf(err, "parse translation language %s", lang)
		}

		for key, message := range translations {
			if err := messages.SetString(tag, key, message); err != nil {
				return nil, errors.Wrapf(err, "set %s translation for %s", lang, key)
			}
		}
	}

	return gallery.Printer(tag, messages), nil
}

func (c *Config) ConfigureLogging() error {
	level := logrus.InfoLevel
	if c.Logging.Level != "" {
		var err error
		level, err = logrus.ParseLevel(c.Logging.Level)
		if err != nil {
			return errors.Wrap(err, "parse log level")
		}
	}

	logrus.SetLevel(level)
	switch c.Logging.Format {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(new(logrus.JSONFormatter))
	default:
		return errors.Errorf("unknown log format: %s", c.Logging.Format)
	}

	return nil
}

// ReadConfig merges YAML inputs in order, applies environment overrides and
// decodes the result. ${VAR} references in inputs are expanded.
func ReadConfig(environPrefix string, inputs ...flu.Input) (*Config, error) {
	global := make(map[string]interface{})
	for _, input := range inputs {
		buf := new(flu.ByteBuffer)
		if _, err := flu.Copy(input, buf); err != nil {
			return nil, errors.Wrapf(err, "read config %s", input)
		}

		config := make(map[string]interface{})
		data := flu.Bytes(os.ExpandEnv(buf.Unmask().String()))
		if err := flu.DecodeFrom(data, flu.YAML(&config)); err != nil {
			return nil, errors.Wrapf(err, "decode expanded config %s", input)
		}

		var err error
		if global, err = merge(global, config); err != nil {
			return nil, errors.Wrapf(err, "merge config %s", input)
		}
	}

	global, err := merge(global, environ(environPrefix, os.Environ()))
	if err != nil {
		return nil, errors.Wrap(err, "merge environment")
	}

	buf := new(flu.ByteBuffer)
	if err := flu.EncodeTo(flu.YAML(global), buf); err != nil {
		return nil, errors.Wrap(err, "encode global config")
	}

	config := new(Config)
	if err := flu.DecodeFrom(buf, flu.YAML(config)); err != nil {
		return nil, errors.Wrap(err, "decode global config")
	}

	config.setDefaults()
	return config, nil
}

func (c *Config) setDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}

	if c.Server.Assets == "" {
		c.Server.Assets = "/javascripts"
	}

	if c.Files.BaseURL == "" {
		c.Files.BaseURL = "/files"
	}
}

func environ(prefix string, lines []string) map[string]interface{} {
	m := make(map[string]interface{})
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			continue
		}

		line = line[len(prefix):]
		equals := strings.Index(line, "=")
		if equals < 0 {
			continue
		}

		key, value := line[:equals], line[equals+1:]
		keyTokens := strings.Split(key, "_")
		lastIdx := len(keyTokens) - 1
		entry := m
		for i, keyToken := range keyTokens {
			if keyToken == "" {
				break
			}

			keyToken = strings.ToLower(keyToken)
			if i == lastIdx {
				if ev, ok := entry[keyToken]; ok {
					if _, ok := ev.(map[string]interface{}); ok {
						logrus.Warnf("discarding env var %s due to type incompatibility", key)
						continue
					}
				}

				entry[keyToken] = parseScalar(value)
				continue
			}

			child, ok := entry[keyToken].(map[string]interface{})
			if !ok {
				if _, exists := entry[keyToken]; exists {
					logrus.Warnf("overriding parent as object for env var %s", key)
				}

				child = make(map[string]interface{})
				entry[keyToken] = child
			}

			entry = child
		}
	}

	return m
}

// parseScalar reads booleans only from true/false literals, so "1" stays a number.
// Boolean keys must be overridden with true or false.
func parseScalar(value string) interface{} {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}

	if v, err := strconv.ParseInt(value, 10, 64); err == nil {
		return v
	} else if v, err := strconv.ParseFloat(value, 64); err == nil {
		return v
	}

	return value
}

func merge(a, b map[string]interface{}) (map[string]interface{}, error) {
	for k, v := range b {
		av, ok := a[k]
		if !ok {
			a[k] = v
			continue
		}

		mav, aIsMap := av.(map[string]interface{})
		mv, bIsMap := v.(map[string]interface{})
		switch {
		case aIsMap && bIsMap:
			merged, err := merge(mav, mv)
			if err != nil {
				return nil, errors.Wrap(err, k)
			}

			a[k] = merged
		case !aIsMap && !bIsMap:
			a[k] = v
		default:
			return nil, errors.Errorf("configuration keys %s must have the same type", k)
		}
	}

	return a, nil
}
