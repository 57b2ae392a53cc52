// Package classify maps raw model identifiers, tags, and metric names to
// the closed enumerations of the record model. Every function has a
// defined fallback and never fails.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ssenthilnathan3/metriqai/internal/models"
)

// familyRule pairs a family with the keywords that select it. Rules are
// evaluated in order and the first keyword hit wins, so the table order
// encodes tie-break precedence (the BERT group precedes GPT, etc).
type familyRule struct {
	family   models.ModelFamily
	keywords []string
}

var familyRules = []familyRule{
	{models.FamilyBERT, []string{"bert", "distilbert", "roberta", "deberta", "albert"}},
	{models.FamilyGPT, []string{"gpt", "gpt2", "gpt-neo", "gpt-j"}},
	{models.FamilyT5, []string{"t5", "flan-t5", "ul2"}},
	{models.FamilyLLaMA, []string{"llama", "llama2", "llama-2"}},
	{models.FamilyMistral, []string{"mistral"}},
	{models.FamilyGemma, []string{"gemma"}},
	{models.FamilyFalcon, []string{"falcon"}},
	{models.FamilyBloom, []string{"bloom"}},
	{models.FamilyResNet, []string{"resnet"}},
	{models.FamilyViT, []string{"vit", "vision-transformer", "deit"}},
	{models.FamilyEfficientNet, []string{"efficientnet"}},
	{models.FamilyMobileNet, []string{"mobilenet"}},
	{models.FamilyDenseNet, []string{"densenet"}},
	{models.FamilyInception, []string{"inception"}},
	{models.FamilyCLIP, []string{"clip"}},
	{models.FamilyBLIP, []string{"blip"}},
	{models.FamilyWhisper, []string{"whisper"}},
	{models.FamilyWav2Vec, []string{"wav2vec"}},
	{models.FamilyELECTRA, []string{"electra"}},
}

// nameFamilyRules is the lighter table used for externally sourced
// leaderboard rows that carry only a free-text model name.
var nameFamilyRules = []familyRule{
	{models.FamilyBERT, []string{"bert", "roberta", "deberta"}},
	{models.FamilyViT, []string{"vit", "vision transformer"}},
	{models.FamilyResNet, []string{"resnet"}},
	{models.FamilyGPT, []string{"gpt"}},
	{models.FamilyT5, []string{"t5"}},
	{models.FamilyEfficientNet, []string{"efficientnet"}},
}

// Family classifies a model identifier plus its tags into a family.
// Returns FamilyOther when no keyword matches.
func Family(modelID string, tags []string) models.ModelFamily {
	id := strings.ToLower(modelID)
	tagText := strings.ToLower(strings.Join(tags, " "))

	for _, rule := range familyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(id, kw) || strings.Contains(tagText, kw) {
				return rule.family
			}
		}
	}
	return models.FamilyOther
}

// FamilyFromName classifies a bare model name against the reduced table.
func FamilyFromName(name string) models.ModelFamily {
	lower := strings.ToLower(name)
	for _, rule := range nameFamilyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.family
			}
		}
	}
	return models.FamilyOther
}

// sizeRungs is the fixed size ladder, checked top to bottom. The first
// rung with a keyword hit wins; "xl" therefore also catches "xxl" and
// "large" catches "x-large", matching the upstream heuristic exactly.
var sizeRungs = []struct {
	size     models.ModelSize
	keywords []string
}{
	{models.SizeTiny, []string{"tiny", "mini"}},
	{models.SizeSmall, []string{"small", "lite"}},
	{models.SizeBase, []string{"base"}},
	{models.SizeLarge, []string{"large"}},
	{models.SizeXL, []string{"xl", "x-large"}},
	{models.SizeXXL, []string{"xxl", "xx-large", "11b", "13b", "30b", "70b"}},
}

// Size extracts a coarse size category from the identifier and tags.
// The second return is false when no rung matches.
func Size(modelID string, tags []string) (models.ModelSize, bool) {
	text := strings.ToLower(modelID + " " + strings.Join(tags, " "))
	for _, rung := range sizeRungs {
		for _, kw := range rung.keywords {
			if strings.Contains(text, kw) {
				return rung.size, true
			}
		}
	}
	return "", false
}

// paramPatterns are tried in order: billion first, then million, then
// thousand. Only the first pattern that matches anywhere is used, so a
// billion hint beats an earlier-occurring million hint.
var paramPatterns = []struct {
	re         *regexp.Regexp
	multiplier float64
}{
	{regexp.MustCompile(`(\d+\.?\d*)\s*b(?:illion)?`), 1_000_000_000},
	{regexp.MustCompile(`(\d+\.?\d*)\s*m(?:illion)?`), 1_000_000},
	{regexp.MustCompile(`(\d+\.?\d*)\s*k(?:thousand)?`), 1_000},
}

// ParameterCount extracts an absolute parameter count from magnitude
// hints like "7b" or "350m". This is a coarse heuristic, not metadata
// extraction; the second return is false when no hint is found.
func ParameterCount(modelID string, tags []string) (int64, bool) {
	text := strings.ToLower(modelID + " " + strings.Join(tags, " "))
	for _, p := range paramPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		num, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return int64(num * p.multiplier), true
	}
	return 0, false
}

// pipelineTasks maps registry pipeline tags to the internal task enum.
var pipelineTasks = map[string]models.TaskType{
	"text-classification":          models.TaskTextClassification,
	"token-classification":         models.TaskTokenClassification,
	"question-answering":           models.TaskQuestionAnswering,
	"text-generation":              models.TaskTextGeneration,
	"text2text-generation":         models.TaskText2TextGeneration,
	"translation":                  models.TaskTranslation,
	"summarization":                models.TaskSummarization,
	"image-classification":         models.TaskImageClassification,
	"object-detection":             models.TaskObjectDetection,
	"image-segmentation":           models.TaskImageSegmentation,
	"automatic-speech-recognition": models.TaskSpeechRecognition,
	"audio-classification":         models.TaskAudioClassification,
	"tabular-classification":       models.TaskTabularClassification,
	"tabular-regression":           models.TaskTabularRegression,
}

// TaskFromPipeline maps a pipeline tag to a task type. Unmapped tags
// default to text-classification.
func TaskFromPipeline(pipelineTag string) models.TaskType {
	if t, ok := pipelineTasks[pipelineTag]; ok {
		return t
	}
	return models.TaskTextClassification
}

// metricRule pairs a metric keyword with its type. Evaluated in order
// with substring matching, so "rouge1" and friends fold into ROUGE.
var metricRules = []struct {
	keyword string
	metric  models.MetricType
}{
	{"accuracy", models.MetricAccuracy},
	{"f1", models.MetricF1},
	{"precision", models.MetricPrecision},
	{"recall", models.MetricRecall},
	{"bleu", models.MetricBLEU},
	{"rouge", models.MetricROUGE},
	{"perplexity", models.MetricPerplexity},
	{"wer", models.MetricWER},
	{"cer", models.MetricCER},
	{"exact_match", models.MetricExactMatch},
	{"squad", models.MetricSQuAD},
	{"bertscore", models.MetricBERTScore},
	{"meteor", models.MetricMETEOR},
	{"mse", models.MetricMSE},
	{"mae", models.MetricMAE},
	{"r2", models.MetricR2},
	{"auc", models.MetricAUC},
	{"map", models.MetricMAP},
	{"iou", models.MetricIOU},
}

// Metric maps a free-form metric name to a metric type. Unknown names
// fall back to ACCURACY; that fallback is deliberate, not an error.
func Metric(name string) models.MetricType {
	lower := strings.ToLower(name)
	for _, rule := range metricRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.metric
		}
	}
	return models.MetricAccuracy
}
