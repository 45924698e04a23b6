package knowledge

import "finsight-rag/internal/models"

// DefaultBooks is the built-in corpus used when the storage backend has
// no books yet. Summaries and insights are curated for Indian markets.
func DefaultBooks() []models.Document {
	return []models.Document{
		{
			Title:  "Let's Talk Money by Monika Halan",
			Author: "Monika Halan",
			FullText: `Let's Talk Money is a comprehensive guide to managing personal finances in India. ` +
				`The book covers essential topics like budgeting, insurance, investments, retirement planning, and tax planning ` +
				`with specific focus on Indian financial products and regulations. ` +
				`Key insights include the Serenity System for organizing finances, the importance of term insurance ` +
				`over traditional policies, and investment strategies for Indians across different age groups and risk profiles.`,
			Insights: []string{
				"The Serenity System: A three-jar approach to organizing your money",
				"Term insurance is the most cost-effective life insurance in India",
				"Diversify investments across equity, debt, and gold based on your time horizon",
				"Understand the tax implications of different investment options in India",
			},
			Topics: []string{"Personal Finance", "Budgeting", "Insurance", "Investments", "Tax Planning"},
		},
		{
			Title:  "The Intelligent Investor by Benjamin Graham",
			Author: "Benjamin Graham",
			FullText: `The Intelligent Investor is a classic investment guide that promotes value investing principles. ` +
				`While written with US markets in mind, the core principles apply to Indian investors as well. ` +
				`The book emphasizes fundamental analysis, margin of safety, and long-term investment strategies. ` +
				`Indian investors can apply these concepts to BSE and NSE listed companies by focusing on ` +
				`strong fundamentals, reasonable valuations, and avoiding market speculation.`,
			Insights: []string{
				"Value investing focuses on intrinsic value rather than market trends",
				"Mr. Market analogy explains market volatility and irrational behavior",
				"Margin of safety is essential for risk management in Indian equity markets",
				"Defensive vs. Enterprising investor strategies can be applied to Indian portfolios",
			},
			Topics: []string{"Value Investing", "Stock Analysis", "Risk Management", "Market Psychology"},
		},
		{
			Title:  "Rich Dad Poor Dad by Robert Kiyosaki",
			Author: "Robert Kiyosaki",
			FullText: `Rich Dad Poor Dad contrasts the financial philosophies of the author's two father figures. ` +
				`For Indian readers, the book's emphasis on financial education and asset building is particularly relevant. ` +
				`The concepts of assets vs. liabilities can be applied to Indian investments like real estate, stocks, and business ownership. ` +
				`The book's tax strategies, however, need to be adapted to Indian taxation laws and regulations.`,
			Insights: []string{
				"Build assets that generate passive income rather than working for money",
				"Financial literacy is critical and often missing from traditional education in India",
				"Understanding the difference between assets and liabilities in the Indian context",
				"Entrepreneurship as a path to wealth creation for Indian professionals",
			},
			Topics: []string{"Financial Education", "Asset Building", "Passive Income", "Entrepreneurship"},
		},
	}
}
