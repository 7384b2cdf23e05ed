package artifact

// Kind identifies one of the six artifact categories. Each kind has its own
// creator and its own slice of the store.
type Kind string

const (
	// KindRawDataset is the leaf of the derivation chain; it has no dependency.
	KindRawDataset Kind = "raw_dataset"

	// KindDatasetPipeline transforms a raw dataset into processed form.
	KindDatasetPipeline Kind = "dataset_pipeline"

	// KindProcessedDataset is the output of a dataset pipeline.
	KindProcessedDataset Kind = "processed_dataset"

	// KindProductionPipeline is the feature pipeline applied at serving time.
	KindProductionPipeline Kind = "production_pipeline"

	// KindModel is a trained model fitted against a production pipeline.
	KindModel Kind = "model"

	// KindMetric is an evaluation metric scored against a model.
	KindMetric Kind = "metric"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the kind is a recognized artifact kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindRawDataset, KindDatasetPipeline, KindProcessedDataset,
		KindProductionPipeline, KindModel, KindMetric:
		return true
	default:
		return false
	}
}

// Dependency returns the kind of the immediate upstream dependency and true,
// or false for the leaf kind (RawDataset) and unknown kinds.
func (k Kind) Dependency() (Kind, bool) {
	switch k {
	case KindDatasetPipeline:
		return KindRawDataset, true
	case KindProcessedDataset:
		return KindDatasetPipeline, true
	case KindProductionPipeline:
		return KindProcessedDataset, true
	case KindModel:
		return KindProductionPipeline, true
	case KindMetric:
		return KindModel, true
	default:
		return "", false
	}
}

// Kinds returns all kinds in dependency order, leaf first.
func Kinds() []Kind {
	return []Kind{
		KindRawDataset,
		KindDatasetPipeline,
		KindProcessedDataset,
		KindProductionPipeline,
		KindModel,
		KindMetric,
	}
}
