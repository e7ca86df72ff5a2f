package chatbot

import (
	"math/rand/v2"
	"strings"
	"time"
)

// genericBucket classifies off-topic or unmatched questions into a small set
// of conversational intents. Buckets are checked in order, first hit wins,
// and every reply still steers back to the platform.
type genericBucket struct {
	Name     string
	Keywords []string
	Reply    func(lang Tag) string
}

var genericBuckets = []genericBucket{
	{
		Name:     "weather",
		Keywords: []string{"weather", "temperature", "rain", "sunny", "cloudy", "hot", "cold", "আবহাওয়া"},
		Reply: func(lang Tag) string {
			if lang == LangBN {
				return "আমি একটি এআই সহকারী, তাই আমি আবহাওয়ার তথ্য প্রদান করতে পারি না। তবে আপনি যদি M873 প্ল্যাটফর্ম সম্পর্কে জানতে চান, তাহলে আমি সাহায্য করতে পারি!"
			}
			return "I'm an AI assistant, so I can't provide real-time weather information. However, if you're interested in the M873 platform, I can help with that! M873 is a modern platform that helps with various types of data processing and information management."
		},
	},
	{
		Name:     "time",
		Keywords: []string{"time", "clock", "hour", "minute", "second", "date", "today", "সময়"},
		Reply: func(lang Tag) string {
			now := time.Now().Format("15:04")
			if lang == LangBN {
				return "বর্তমান সময়: " + now + "। M873 প্ল্যাটফর্মটি সময় ব্যবস্থাপনা এবং শিডিউলিং বৈশিষ্ট্য প্রদান করে।"
			}
			return "Current time: " + now + ". The M873 platform offers time management and scheduling features that help users effectively manage their time and tasks."
		},
	},
	{
		Name:     "greeting",
		Keywords: []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"},
		Reply: func(lang Tag) string {
			if lang == LangBN {
				return "হ্যালো! আমি M873 সহকারী, M873 প্ল্যাটফর্মের জন্য আপনার সহায়ক এআই সঙ্গী! M873 সম্পর্কে আপনি কি জানতে চান?"
			}
			return "Hello! I'm M873 Assistant, your helpful AI companion for M873 platform! What would you like to know about M873?"
		},
	},
	{
		Name:     "thanks",
		Keywords: []string{"thank", "thanks", "appreciate", "ধন্যবাদ"},
		Reply: func(lang Tag) string {
			if lang == LangBN {
				return "আপনাকে ধন্যবাদ! আমি M873 প্ল্যাটফর্মের জন্য তৈরি এআই সহকারী। M873 সম্পর্কে আপনার আরও কোনো প্রশ্ন আছে কি?"
			}
			return "Thank you! I'm an AI assistant created for the M873 platform. Do you have any more questions about M873?"
		},
	},
	{
		Name:     "help",
		Keywords: []string{"help", "assist", "support", "aid", "সাহায্য"},
		Reply: func(lang Tag) string {
			if lang == LangBN {
				return "আমি M873 সহকারী, এবং আমি M873 প্ল্যাটফর্ম সম্পর্কিত যেকোনো বিষয়ে সাহায্য করতে প্রস্তুত! আপনি M873 এর বৈশিষ্ট্য, ব্যবহার, বা এর নির্মাতা সম্পর্কে জিজ্ঞাসা করতে পারেন।"
			}
			return "I'm M873 Assistant, and I'm ready to help with anything related to the M873 platform! You can ask about M873's features, usage, or its creator."
		},
	},
	{
		Name:     "wellbeing",
		Keywords: []string{"how are you", "how do you do", "what's up", "wassup", "কেমন আছ"},
		Reply: func(lang Tag) string {
			if lang == LangBN {
				return "আমি একটি এআই সহকারী, তাই আমার অনুভূতি নেই, কিন্তু আমি M873 প্ল্যাটফর্মের জন্য সম্পূর্ণরূপে কার্যকর আছি! M873 সম্পর্কে আপনার কি জানতে ইচ্ছা আছে?"
			}
			return "I'm an AI assistant, so I don't have feelings, but I'm fully functional for the M873 platform! What would you like to know about M873?"
		},
	},
}

var defaultBlurbs = map[Tag][]string{
	LangEN: {
		"M873 is a modern platform created by Md. Mahfuzul Islam, a student of Electrical and Electronic Engineering at Northern University Bangladesh. It provides secure and future-ready solutions for users.",
		"The M873 platform is built by Md. Mahfuzul Islam from Dhaka, Bangladesh. It offers simple AI learning and training solutions with modern features and secure access.",
		"M873 is a simple AI solutions platform operated from Dhaka, Bangladesh. It provides modern features and secure access for users interested in AI learning.",
	},
	LangBN: {
		"M873 একটি আধুনিক প্ল্যাটফর্ম যা Md. Mahfuzul Islam দ্বারা তৈরি করা হয়েছে। এটি ব্যবহারকারীদের জন্য নিরাপদ এবং ভবিষ্যৎ-উপযোগী সমাধান প্রদান করে।",
		"M873 প্ল্যাটফর্মটি Northern University Bangladesh-এ অধ্যয়নরত Md. Mahfuzul Islam দ্বারা নির্মিত। এটি AI শেখা এবং প্রশিক্ষণের জন্য সহজ সমাধান প্রদান করে।",
		"M873 একটি সহজ AI সমাধান প্ল্যাটফর্ম যা ঢাকা, বাংলাদেশ থেকে পরিচালিত হয়। এটি ব্যবহারকারীদের জন্য আধুনিক বৈশিষ্ট্য এবং নিরাপদ অ্যাক্সেস প্রদান করে।",
	},
}

func (m *Matcher) genericReply(lowered string, lang Tag) Reply {
	for i := range genericBuckets {
		for _, keyword := range genericBuckets[i].Keywords {
			if strings.Contains(lowered, keyword) {
				return Reply{
					Content:    genericBuckets[i].Reply(lang),
					Language:   lang,
					Confidence: 0.7,
					Source:     SourceGeneric,
				}
			}
		}
	}
	blurbs, ok := defaultBlurbs[lang]
	if !ok || len(blurbs) == 0 {
		blurbs = defaultBlurbs[PrimaryLang]
	}
	// top-level rand is safe for concurrent Answer calls
	return Reply{
		Content:    blurbs[rand.IntN(len(blurbs))],
		Language:   lang,
		Confidence: 0.7,
		Source:     SourceGeneric,
	}
}
