package snippets

// defaultSets returns the built-in PG snippet collection. User files shadow
// these per field; they are never written to disk.
func defaultSets() map[string]FieldSet {
	return map[string]FieldSet{
		"environment": {
			Rating: string(RatingPG),
			Categories: map[string]Category{
				"Location": {Items: []string{
					"hotel lobby", "restaurant", "office building", "apartment",
					"house", "park", "beach", "forest", "city street",
					"subway station", "airport", "hospital", "school", "library",
					"museum", "theater", "gym", "spa", "rooftop", "basement",
				}},
				"Architecture": {Items: []string{
					"marble floors", "crystal chandeliers", "glass walls",
					"wooden beams", "stone walls", "modern minimalist",
					"art deco", "gothic", "victorian", "industrial",
					"mediterranean", "japanese zen", "scandinavian", "rustic",
					"luxury", "abandoned", "futuristic", "steampunk",
				}},
				"Lighting": {Items: []string{
					"natural light", "golden hour", "blue hour", "moonlight",
					"candlelight", "neon lights", "spotlights",
					"ambient lighting", "dramatic shadows", "soft diffused light",
				}},
			},
		},
		"weather": {
			Rating: string(RatingPG),
			Categories: map[string]Category{
				"Conditions": {Items: []string{
					"sunny", "cloudy", "overcast", "rainy", "stormy", "foggy",
					"misty", "snowy", "windy", "calm",
				}},
				"Atmosphere": {Items: []string{
					"golden hour light", "blue hour", "dramatic clouds",
					"clear sky", "storm clouds", "light rain", "heavy rain",
					"snow falling", "fog rolling in",
				}},
			},
		},
		"date_time": {
			Rating: string(RatingPG),
			Categories: map[string]Category{
				"Time of Day": {Items: []string{
					"dawn", "morning", "noon", "afternoon", "sunset", "dusk",
					"night", "midnight",
				}},
				"Specific Times": {Items: []string{
					"6am", "7am", "8am", "9am", "10am", "11am", "12pm", "1pm",
					"2pm", "3pm", "4pm", "5pm", "6pm", "7pm", "8pm", "9pm",
					"10pm", "11pm", "12am",
				}},
			},
		},
		"subjects": {
			Rating: string(RatingPG),
			Categories: map[string]Category{
				"Human": {Subcategories: map[string][]string{
					"Gender": {"man", "woman", "boy", "girl"},
					"Age":    {"teenager", "young adult", "middle-aged", "elderly"},
					"Profession": {
						"businessman", "businesswoman", "doctor", "nurse",
						"teacher", "student", "artist", "musician", "chef",
						"waiter", "police officer", "firefighter", "soldier",
						"pilot", "scientist",
					},
				}},
				"Animal": {Items: []string{
					"dog", "cat", "horse", "bird", "fish", "rabbit", "hamster",
					"guinea pig", "ferret", "snake", "lizard", "turtle",
				}},
				"Vehicle": {Items: []string{
					"car", "motorcycle", "bicycle", "truck", "bus", "train",
					"airplane", "helicopter", "boat", "ship", "yacht",
				}},
				"Object": {Items: []string{
					"glass bottle", "book", "phone", "laptop", "coffee cup",
					"wine glass", "flower vase", "picture frame", "mirror",
					"clock", "candle", "lamp",
				}},
			},
		},
		"pose_action": {
			Rating: string(RatingPG),
			Categories: map[string]Category{
				"Standing": {Items: []string{
					"standing", "standing tall", "leaning against wall",
					"arms crossed", "hands in pockets", "pointing", "waving",
					"posing", "looking around",
				}},
				"Sitting": {Items: []string{
					"sitting", "sitting cross-legged", "sitting on floor",
					"sitting on chair", "sitting on sofa", "sitting on bench",
					"sitting on stairs", "lounging", "relaxing",
				}},
				"Movement": {Items: []string{
					"walking", "running", "jumping", "dancing", "climbing",
					"falling", "flying", "swimming", "crawling", "sliding",
				}},
				"Interaction": {Items: []string{
					"looking at", "talking to", "holding hands", "hugging",
					"playing", "working together", "arguing", "laughing",
					"crying", "smiling", "frowning",
				}},
				"Actions": {Items: []string{
					"reading", "writing", "cooking", "cleaning", "driving",
					"exercising", "sleeping", "eating", "drinking", "praying",
					"meditating",
				}},
			},
		},
		"camera": {
			Rating: string(RatingPG),
			Categories: map[string]Category{
				"Camera Type": {Items: []string{
					"Arri Alexa", "RED camera", "Canon C300", "Sony FX9",
					"Blackmagic URSA", "Canon 5D Mark IV", "Nikon D850",
					"Sony A7R IV", "Leica M10", "Hasselblad X1D", "iPhone",
					"GoPro",
				}},
				"Film Cameras": {Items: []string{
					"Leica M6", "Nikon F3", "Canon AE-1", "Pentax K1000",
					"Hasselblad 500C/M", "Mamiya RB67", "Rolleiflex TLR",
					"Polaroid SX-70",
				}},
				"Lens": {Items: []string{
					"wide angle lens", "telephoto lens", "macro lens",
					"fisheye lens", "anamorphic lens", "prime lens", "zoom lens",
				}},
				"Settings": {Items: []string{
					"shallow depth of field", "deep depth of field", "low angle",
					"high angle", "eye level", "close-up", "extreme close-up",
					"medium shot", "long shot", "extreme long shot",
				}},
			},
		},
		"framing_action": {
			Rating: string(RatingPG),
			Categories: map[string]Category{
				"Movement": {Items: []string{
					"dollies in", "dollies out", "pans left", "pans right",
					"tilts up", "tilts down", "zooms in", "zooms out",
					"tracks left", "tracks right", "cranes up", "cranes down",
					"steadicam", "handheld", "static shot",
				}},
				"Composition": {Items: []string{
					"rule of thirds", "centered composition", "leading lines",
					"symmetrical", "asymmetrical", "framed within frame",
					"negative space", "close-up", "medium shot", "wide shot",
					"establishing shot",
				}},
				"Camera Position": {Items: []string{
					"low angle", "high angle", "eye level", "bird's eye view",
					"worm's eye view", "dutch angle", "over the shoulder",
					"point of view",
				}},
			},
		},
		"grading": {
			Rating: string(RatingPG),
			Categories: map[string]Category{
				"Film Look": {Items: []string{
					"Kodak Portra", "Cinestill 800T", "Ilford HP5",
					"Kodak Tri-X", "Fuji Provia", "Kodak Ektachrome",
					"Fuji Superia", "Kodak Gold", "Agfa Vista",
				}},
				"Color Temperature": {Items: []string{
					"warm", "cool", "neutral", "golden", "blue", "green",
					"purple", "orange", "teal", "magenta",
				}},
				"Style": {Items: []string{
					"cinematic", "vintage", "modern", "retro", "futuristic",
					"noir", "romantic", "dramatic", "documentary", "commercial",
					"artistic", "minimalist",
				}},
				"Mood": {Items: []string{
					"melancholic", "uplifting", "mysterious", "peaceful",
					"energetic", "calm", "tense", "joyful", "hopeful", "dark",
					"bright", "moody", "cheerful",
				}},
			},
		},
	}
}
