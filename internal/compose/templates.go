package compose

// FallbackTemplate is used when no templates are configured. Every
// template must contain each placeholder exactly once: {title},
// {summary}, {insights}, {link}, {hashtags}.
const FallbackTemplate = "🎯 {title}\n\n{summary}\n\n💡 Key insights:\n{insights}\n\n🔗 Read more: {link}\n\n{hashtags}"

// DefaultTemplates is a starter set written into generated config files.
var DefaultTemplates = []string{
	FallbackTemplate,
	"📊 {title}\n\n{summary}\n\nWhat stood out:\n{insights}\n\nWould this change how your team works?\n\n📖 Full story: {link}\n\n{hashtags}",
	"🤖 {title}\n\n{summary}\n\n🔍 Worth knowing:\n{insights}\n\nExplore the details: {link}\n\n{hashtags}",
}
