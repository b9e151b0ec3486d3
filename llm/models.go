package llm

// OpenRouter model ids. Gemini takes bare model names instead.
const (
	DefaultChatModel       = "meta-llama/llama-3.2-3b-instruct:free"
	DefaultExtractionModel = "google/gemini-flash-1.5:free"
	DefaultGenerationModel = "meta-llama/llama-3.1-8b-instruct:free"

	GeminiChatModel       = "gemini-2.0-flash"
	GeminiExtractionModel = "gemini-2.0-flash"
	GeminiGenerationModel = "gemini-1.5-pro"
)

// ModelSet is what a provider runs when no model is configured explicitly.
type ModelSet struct {
	Chat       string
	Extraction string
	Generation string
	Catalogue  []ModelInfo
}

// DefaultModels picks the model set matching a provider name as returned by
// Provider.Name. Unknown names get the OpenRouter set.
func DefaultModels(provider string) ModelSet {
	if provider == "gemini" {
		return ModelSet{
			Chat:       GeminiChatModel,
			Extraction: GeminiExtractionModel,
			Generation: GeminiGenerationModel,
			Catalogue:  GeminiModels,
		}
	}
	return ModelSet{
		Chat:       DefaultChatModel,
		Extraction: DefaultExtractionModel,
		Generation: DefaultGenerationModel,
		Catalogue:  OpenRouterModels,
	}
}

type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Provider    string `json:"provider"`
	Description string `json:"description"`
}

var GeminiModels = []ModelInfo{
	{
		ID:          "gemini-2.0-flash",
		Name:        "Gemini 2.0 Flash",
		Provider:    "google",
		Description: "Fast multimodal Gemini model for everyday tasks",
	},
	{
		ID:          "gemini-1.5-flash",
		Name:        "Gemini 1.5 Flash",
		Provider:    "google",
		Description: "Google's Gemini Flash model with 1M context window, fast and efficient",
	},
	{
		ID:          "gemini-1.5-pro",
		Name:        "Gemini 1.5 Pro",
		Provider:    "google",
		Description: "Google's larger Gemini model for complex reasoning and code",
	},
}

// OpenRouterModels are the free OpenRouter models offered to the chat UI.
var OpenRouterModels = []ModelInfo{
	{
		ID:          "meta-llama/llama-3.2-3b-instruct:free",
		Name:        "Llama 3.2 3B Instruct",
		Provider:    "meta",
		Description: "Meta's latest 3B parameter model with instruction following capabilities",
	},
	{
		ID:          "google/gemma-2-9b-it:free",
		Name:        "Gemma 2 9B IT",
		Provider:    "google",
		Description: "Google's Gemma 2 model with 9B parameters, optimized for instruction following",
	},
	{
		ID:          "microsoft/phi-3-mini-128k-instruct:free",
		Name:        "Phi-3 Mini 128K",
		Provider:    "microsoft",
		Description: "Microsoft's Phi-3 model with 128K context window, optimized for instructions",
	},
	{
		ID:          "meta-llama/llama-3.1-8b-instruct:free",
		Name:        "Llama 3.1 8B Instruct",
		Provider:    "meta",
		Description: "Meta's Llama 3.1 model with 8B parameters and instruction tuning",
	},
	{
		ID:          "nousresearch/hermes-3-llama-3.1-405b:free",
		Name:        "Hermes 3 Llama 3.1 405B",
		Provider:    "nousresearch",
		Description: "Nous Research's Hermes 3 based on Llama 3.1 405B, fine-tuned for chat",
	},
	{
		ID:          "google/gemini-flash-1.5:free",
		Name:        "Gemini Flash 1.5",
		Provider:    "google",
		Description: "Google's Gemini Flash model with 1.5M context window, fast and efficient",
	},
}
