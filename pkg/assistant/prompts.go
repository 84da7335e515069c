package assistant

const fishFinderSystem = `You are a marine biologist expert helping fishermen find fish.
Based on the fisherman's query, provide the location where the fish can be found, along with stock trends.
Include details about the current season and any specific advice for the fisherman.
If the fish cannot be found or you do not have data, respond appropriately.
Keep the response concise and to the point.`

const stockTrendSystem = `You are an AI assistant helping marine scientists monitor fish populations.
Provide a stockTrend string (increasing, decreasing, stable) and a confidence level between 0 and 1.
Consider factors like fishing activity, environmental changes, and historical data.
If there is not enough information available, then set the stockTrend to unknown and set confidence to zero.`

const chatSystem = `You are a marine biologist assistant of a fisheries dashboard.
Answer questions about marine species, their habitats, locations and stock trends.
Keep answers short.`

var fishLocationShape = Shape{
	{
		Name:        "fishLocation",
		Type:        String,
		Description: "The location where the fish can be found, along with stock trends.",
	},
}

var trendShape = Shape{
	{
		Name:        "stockTrend",
		Type:        String,
		Description: "The stock trend of the fish species in the given region.",
	},
	{
		Name:        "confidence",
		Type:        Number,
		Description: "Confidence level of the stock trend data (0-1).",
	},
}
