// Package models defines the benchmark record model shared by ingestion,
// the aggregation engine, and the web API.
package models

import "time"

// TaskType identifies the ML task a model is built for.
type TaskType string

const (
	TaskImageClassification   TaskType = "image-classification"
	TaskTextClassification    TaskType = "text-classification"
	TaskTokenClassification   TaskType = "token-classification"
	TaskTextGeneration        TaskType = "text-generation"
	TaskText2TextGeneration   TaskType = "text2text-generation"
	TaskTranslation           TaskType = "translation"
	TaskSummarization         TaskType = "summarization"
	TaskQuestionAnswering     TaskType = "question-answering"
	TaskObjectDetection       TaskType = "object-detection"
	TaskImageSegmentation     TaskType = "image-segmentation"
	TaskSpeechRecognition     TaskType = "automatic-speech-recognition"
	TaskAudioClassification   TaskType = "audio-classification"
	TaskTabularClassification TaskType = "tabular-classification"
	TaskTabularRegression     TaskType = "tabular-regression"
	TaskReinforcementLearning TaskType = "reinforcement-learning"
)

// MetricType identifies a known evaluation metric.
type MetricType string

const (
	MetricAccuracy   MetricType = "accuracy"
	MetricF1         MetricType = "f1"
	MetricPrecision  MetricType = "precision"
	MetricRecall     MetricType = "recall"
	MetricBLEU       MetricType = "bleu"
	MetricROUGE      MetricType = "rouge"
	MetricPerplexity MetricType = "perplexity"
	MetricWER        MetricType = "wer"
	MetricCER        MetricType = "cer"
	MetricExactMatch MetricType = "exact_match"
	MetricSQuAD      MetricType = "squad"
	MetricGLUE       MetricType = "glue"
	MetricBERTScore  MetricType = "bertscore"
	MetricMETEOR     MetricType = "meteor"
	MetricMSE        MetricType = "mse"
	MetricMAE        MetricType = "mae"
	MetricR2         MetricType = "r2"
	MetricAUC        MetricType = "auc"
	MetricMAP        MetricType = "map"
	MetricIOU        MetricType = "iou"
)

// ModelSize is a coarse size category inferred from a model's name.
type ModelSize string

const (
	SizeTiny  ModelSize = "tiny"
	SizeSmall ModelSize = "small"
	SizeBase  ModelSize = "base"
	SizeLarge ModelSize = "large"
	SizeXL    ModelSize = "xl"
	SizeXXL   ModelSize = "xxl"
)

// ModelFamily is a coarse architecture category inferred from a model's
// identifier and tags. FamilyOther is the defined fallback.
type ModelFamily string

const (
	FamilyBERT         ModelFamily = "bert"
	FamilyGPT          ModelFamily = "gpt"
	FamilyT5           ModelFamily = "t5"
	FamilyRoBERTa      ModelFamily = "roberta"
	FamilyDistilBERT   ModelFamily = "distilbert"
	FamilyELECTRA      ModelFamily = "electra"
	FamilyDeBERTa      ModelFamily = "deberta"
	FamilyALBERT       ModelFamily = "albert"
	FamilyResNet       ModelFamily = "resnet"
	FamilyViT          ModelFamily = "vit"
	FamilyEfficientNet ModelFamily = "efficientnet"
	FamilyMobileNet    ModelFamily = "mobilenet"
	FamilyDenseNet     ModelFamily = "densenet"
	FamilyInception    ModelFamily = "inception"
	FamilyCLIP         ModelFamily = "clip"
	FamilyBLIP         ModelFamily = "blip"
	FamilyWhisper      ModelFamily = "whisper"
	FamilyWav2Vec      ModelFamily = "wav2vec"
	FamilyLLaMA        ModelFamily = "llama"
	FamilyMistral      ModelFamily = "mistral"
	FamilyGemma        ModelFamily = "gemma"
	FamilyFalcon       ModelFamily = "falcon"
	FamilyBloom        ModelFamily = "bloom"
	FamilyOther        ModelFamily = "other"
)

// EvaluationResult is one metric measurement for a model on a dataset.
// Value is non-negative by construction upstream; the engine does not
// re-validate it.
type EvaluationResult struct {
	MetricName    string     `json:"metric_name"`
	MetricType    MetricType `json:"metric_type"`
	Value         float64    `json:"value"`
	DatasetName   string     `json:"dataset_name"`
	DatasetConfig string     `json:"dataset_config,omitempty"`
	DatasetSplit  string     `json:"dataset_split"`
}

// ModelInfo describes one model as ingested from a registry. Family and
// TaskType are always assigned during ingestion; the pointer fields are
// best-effort and nil means unknown, never zero.
type ModelInfo struct {
	ModelID        string      `json:"model_id"`
	ModelName      string      `json:"model_name"`
	ModelFamily    ModelFamily `json:"model_family"`
	ModelSize      *ModelSize  `json:"model_size,omitempty"`
	ParameterCount *int64      `json:"parameter_count,omitempty"`
	TaskType       TaskType    `json:"task_type"`
	CreatedAt      *time.Time  `json:"created_at,omitempty"`
	LastModified   *time.Time  `json:"last_modified,omitempty"`
	Downloads      *int64      `json:"downloads,omitempty"`
	Likes          *int64      `json:"likes,omitempty"`
	LibraryName    string      `json:"library_name,omitempty"`
	License        string      `json:"license,omitempty"`
	Tags           []string    `json:"tags"`
	PipelineTag    string      `json:"pipeline_tag,omitempty"`
}

// BenchmarkEntry pairs one model with its evaluation results. Entries are
// immutable once constructed; the engine only reads them.
type BenchmarkEntry struct {
	ModelInfo         ModelInfo          `json:"model_info"`
	EvaluationResults []EvaluationResult `json:"evaluation_results"`
	EvaluatedAt       *time.Time         `json:"evaluated_at,omitempty"`
}
