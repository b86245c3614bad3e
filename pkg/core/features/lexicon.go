package features

import "regexp"

// ctaPhrases is the compiled dictionary of action verbs and goal-congruent
// objects. Matching is case-insensitive over whole phrases.
var ctaPhrases = []string{
	"buy now", "buy", "add to cart", "checkout", "order now", "shop now",
	"start free trial", "start trial", "start now", "try free", "try it free",
	"get started", "get a demo", "get demo", "request a demo", "request demo",
	"book a demo", "sign up", "signup", "register", "create account",
	"subscribe", "join now", "join free",
	"book appointment", "book an appointment", "book now", "schedule",
	"call now", "call us", "contact us", "get a quote", "get quote",
	"learn more", "download", "upgrade", "see plans", "view pricing",
}

// trustPatterns maps each trust-signal kind to its textual cues.
var trustPatterns = map[string][]string{
	"guarantee": {
		"money-back guarantee", "money back guarantee", "satisfaction guaranteed",
		"100% guarantee", "guarantee", "free returns", "cancel anytime",
		"no questions asked", "risk-free", "risk free",
	},
	"security": {
		"ssl", "secure checkout", "secure payment", "encrypted", "pci",
		"gdpr", "soc 2", "soc2", "iso 27001", "hipaa", "verified",
	},
	"testimonial": {
		"testimonial", "what our customers say", "customer stories", "reviews",
		"rated", "stars", "trustpilot", "g2", "capterra", "case study", "case studies",
	},
	"logo": {
		"trusted by", "used by", "as seen in", "featured in", "our customers",
		"join thousands", "join over", "companies use",
	},
}

var (
	// currencyRe catches currency-prefixed amounts ($29, €9.99, £100, ₺50).
	currencyRe = regexp.MustCompile(`[$€£₺¥][ ]?\d[\d,.]*`)
	// priceWordRe catches structured price sentences and plan labels.
	priceWordRe = regexp.MustCompile(`(?i)\b(per month|per year|/mo\b|/month|/yr\b|/year|pricing|price list|monthly plan|annual plan|free plan|pro plan|starter plan|enterprise plan)\b`)
	// planLabelRe counts distinct plan-tier labels for pricing evidence.
	planLabelRe = regexp.MustCompile(`(?i)\b(free|basic|starter|standard|plus|pro|premium|business|team|enterprise)\s+(plan|tier)\b`)
)

// formLabels mark checkout or signup form presence.
var formLabels = []string{
	"email address", "your email", "enter your email", "email",
	"card number", "credit card", "billing", "checkout", "cart",
	"password", "phone number", "full name", "first name",
}

// educationalCues mark explanatory, orientation-phase copy.
var educationalCues = []string{
	"what is", "how it works", "how does", "learn more", "why you need",
	"guide to", "introduction to", "getting started with", "faq",
	"frequently asked", "step by step", "tutorial",
}

// comparisonCues mark evaluation-phase comparison structures.
var comparisonCues = []string{
	"compare plans", "comparison", "vs", "versus", "side by side",
	"which plan", "feature comparison", "plans and pricing",
}

// onboardingCues mark post-decision confirmation or setup copy.
var onboardingCues = []string{
	"welcome aboard", "thank you for your order", "thanks for signing up",
	"order confirmed", "your account is ready", "next steps",
	"complete your setup", "verify your email", "getting set up",
}

// localServiceCues mark brick-and-mortar or appointment businesses.
var localServiceCues = []string{
	"book appointment", "book an appointment", "call now", "call us",
	"opening hours", "open hours", "visit us", "directions", "near you",
	"our location", "our clinic", "our office", "walk-in", "same day",
}

// saasCues mark software-subscription vocabulary.
var saasCues = []string{
	"free trial", "per user", "per seat", "integrations", "api",
	"dashboard", "workspace", "no credit card required", "saas",
}

// ecommerceCues mark product-purchase vocabulary.
var ecommerceCues = []string{
	"add to cart", "in stock", "out of stock", "free shipping",
	"ships", "delivery", "sku", "quantity", "product details",
}

