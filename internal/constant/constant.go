// Package constant holds button labels, catalogues and the assistant's fixed copy.
package constant

const (
	BUTTON_UNDER_1M      = "Under 1M"
	BUTTON_1M_2M         = "1M - 2M"
	BUTTON_2M_5M         = "2M - 5M"
	BUTTON_CUSTOM_BUDGET = "Custom Budget"

	BUTTON_ANY_DEVELOPER = "Any Developer"

	BUTTON_START_NEW_SEARCH    = "Start New Search"
	BUTTON_ADJUST_FILTERS      = "Adjust Filters"
	BUTTON_REFINE_SEARCH       = "Refine Search"
	BUTTON_CONTINUE_SEARCHING  = "Continue Searching"
	BUTTON_TRY_AGAIN           = "Try Again"
	BUTTON_CONTACT_AGENT       = "Contact Agent"
	BUTTON_CONTACT_SUPPORT     = "Contact Support"
	BUTTON_SEE_MORE_PROPERTIES = "See More Properties"
	BUTTON_BROWSE_ALL          = "Browse All"
)

// Search backend business constants
const (
	PrioritizedBrokerageID = "cc3e22bb-5ee1-443a-a4b0-47c33f0d9040"
	CategoryOffPlan        = "Off_plan"
	MaxPriceCap            = 5_000_000
	BackendPageSize        = 100
	DisplayLimit           = 6
	BlacklistedPhrase      = "sartawi properties"
	ProjectLinkPrefix      = "/projects/"
)

// Developers is the developer catalogue in scan order
var Developers = []string{"EMAAR", "Sobha", "DAMAC", "Meraas", "Deyaar", "Arada"}

// Regions is the area catalogue in scan order
var Regions = []string{
	"Dubai Marina", "Downtown Dubai", "Business Bay", "Jumeirah", "Palm Jumeirah",
	"Dubai Hills", "Damac Hills", "Arabian Ranches", "JBR", "JVC", "Dubai Creek Harbour",
	"Meydan", "City Walk", "DIFC", "Bluewaters", "Al Barari",
}

// BudgetOptions are the guided budget buttons
func BudgetOptions() []string {
	return []string{BUTTON_UNDER_1M, BUTTON_1M_2M, BUTTON_2M_5M, BUTTON_CUSTOM_BUDGET}
}

// QuickBudgetOptions are offered again after an unparseable budget
func QuickBudgetOptions() []string {
	return []string{BUTTON_UNDER_1M, BUTTON_1M_2M, BUTTON_2M_5M}
}

// DeveloperOptions are the guided developer buttons
func DeveloperOptions() []string {
	return append(append([]string{}, Developers...), BUTTON_ANY_DEVELOPER)
}

var Greetings = []string{
	"👋 Hey there! Welcome to Saabri Properties!",
	"🌟 Hello! Ready to find your dream property?",
	"🏠 Hi! Saabri Properties at your service!",
}

var FunFacts = []string{
	"💡 Did you know? Dubai has over 200 skyscrapers!",
	"🌆 Fun fact: Dubai's property market is one of the world's most dynamic!",
	"✨ Interesting: Off-plan properties often offer better payment plans!",
	"🎯 Tip: EMAAR properties typically have excellent resale value!",
}

// SuccessTemplates take the number of matching properties
var SuccessTemplates = []string{
	"🎉 Fantastic! I found %d amazing properties for you!",
	"✨ Great news! We have %d properties that match your preferences!",
	"🌟 Perfect! %d stunning properties are waiting for you!",
}

const (
	TEXT_WELCOME = "%s\n\nI'm your property assistant, and I'm super excited to help you discover amazing off-plan properties in Dubai! 🚀\n\n" +
		"Let's make this quick and easy. I just need to know your budget and preferred developer.\n\n" +
		"First things first - what's your budget range? 💰"

	TEXT_RESET_NEW_SEARCH = "Perfect! Let's find you another great property! 🔍\n\nWhat's your budget range?"
	TEXT_RESET_CONTINUE   = "Awesome! Let's find your perfect property! 🏠✨\n\nWhat's your budget range?"

	TEXT_CONTACT_DETAILS = "📍 Address:\n2110-B2B Office Tower - Marasi Dr\nBusiness Bay - Dubai\n\n" +
		"📧 Email:\npropertiescontinental58@gmail.com\n\n" +
		"📱 Phone:\n+971 4 770 5704"

	TEXT_CONTACT = "📞 I'd be happy to connect you with our expert team!\n\nYou can reach us at:\n\n" +
		TEXT_CONTACT_DETAILS +
		"\n\nOur team is ready to help you find your perfect property! Would you like to continue searching?"

	TEXT_BEDROOM_CONTACT_INTRO = "Thank you for your interest! 🏠\n\n" +
		"Our exclusive off-plan projects feature a diverse range of bedroom configurations to suit every lifestyle - from cozy studios to luxurious penthouses.\n\n" +
		"For detailed information about bedroom availability, floor plans, and unit specifications, I'd love to connect you with our expert property consultants who can provide you with comprehensive details tailored to your needs.\n\n" +
		"📞 Here's how to reach us:"

	TEXT_BEDROOM_CONTACT_DETAILS = TEXT_CONTACT_DETAILS +
		"\n\nOur team is ready to assist you with detailed bedroom configurations and help you find the perfect property! 🌟\n\n" +
		"Would you like to continue exploring other properties?"

	TEXT_BROWSE = "For a complete list of all available properties, please visit our listings page or I can help you refine your search criteria.\n\nWhat would you like to do?"

	TEXT_CUSTOM_BUDGET = "No problem! 📝\n\nPlease type your budget range.\nFor example: '1.5M to 3M' or 'Maximum 2.5M'\n\n(Note: We show properties up to AED 5M)"

	TEXT_BUDGET_NOT_UNDERSTOOD = "I couldn't quite understand that budget. 🤔\n\nCould you try again? Examples:\n• '1.5M to 3M'\n• 'Under 2M'\n• 'Maximum 2.5M'\n\n(Note: We show properties up to AED 5M)"

	TEXT_BUDGET_SET = "Awesome! Budget range set to %s. 💎\n\nNow, which developer catches your eye? We have some fantastic options!"

	TEXT_DEVELOPER_CHOSEN = "Excellent choice! %s builds stunning properties! 🏗️\n\nGive me a moment while I search our database..."
	TEXT_ANY_DEVELOPER    = "Great! We'll search across all developers! 🌟\n\nGive me a moment while I search our database..."
	TEXT_PICK_DEVELOPER   = "I didn't catch a developer there. 🤔\n\nPlease pick one of the developers below, or choose \"Any Developer\"."

	TEXT_HELP = "I'm here to help you find properties! You can tell me about:\n\n" +
		"• Your budget (e.g., '2M to 5M')\n• Preferred developer (e.g., 'EMAAR')\n• Location (e.g., 'Dubai Marina')\n\n" +
		"Or you can start a new search!"

	TEXT_UNDERSTOOD        = "Great! I understood:\n\n"
	TEXT_UNDERSTOOD_SEARCH = "\n\nLet me search for properties matching your criteria! 🔍"

	TEXT_SEARCHING = "🔍 Searching our exclusive collection of off-plan properties...\n\n"

	TEXT_RESULTS_SUFFIX = "\n\nHere are some handpicked recommendations just for you:"

	TEXT_NO_RESULTS = "Hmm... 🤔 I couldn't find properties matching those exact criteria.\n\n" +
		"But don't worry! Let's try:\n• Adjusting your budget range\n• Exploring other developers\n• Speaking with our expert agents for hidden gems"

	TEXT_SEARCH_FAILED = "Sorry, I encountered an issue while searching. The server might be temporarily unavailable.\n\n" +
		"Error: %s\n\nPlease try again or contact our team directly."
)
