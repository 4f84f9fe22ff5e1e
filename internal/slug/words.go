package slug

// Simple descriptors that are easy to remember (colors, shapes, numbers,
// sizes, moods, textures and so on).
var descriptors = []string{
	// Colors
	"red", "blue", "green", "yellow", "purple", "orange", "pink", "brown", "black", "white",
	"gold", "silver", "gray", "navy", "teal", "lime", "magenta", "ruby", "indigo", "violet",
	"turquoise", "crimson", "emerald", "amber", "rose", "lavender", "maroon", "olive", "cyan", "peach",
	// Shapes
	"round", "square", "triangle", "circle", "oval", "rectangle", "star", "heart", "diamond", "hexagon",
	"crescent", "spiral", "cross", "arrow", "moon", "sun", "cloud", "flower", "leaf",
	// Numbers
	"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth",
	"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
	"eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen", "twenty",
	// Sizes
	"big", "small", "tiny", "huge", "giant", "mini", "large", "little", "enormous", "petite",
	"massive", "micro", "jumbo", "wee", "mighty", "puny", "colossal", "minuscule", "titanic", "dinky",
	// Speed
	"fast", "slow", "quick", "speedy", "swift", "lazy", "rapid", "sluggish", "brisk", "leisurely",
	"hurried", "relaxed", "hasty", "calm", "rushed", "peaceful", "dashing", "racing", "serene",
	// Moods
	"happy", "sad", "angry", "excited", "sleepy", "grumpy", "cheerful", "friendly", "scared", "brave",
	"joyful", "lonely", "furious", "thrilled", "tired", "cranky", "merry", "kind", "afraid", "courageous",
	"giggly", "melancholy", "mad", "delighted", "drowsy", "irritable", "jolly", "terrified", "heroic",
	// Sounds
	"loud", "quiet", "noisy", "silent", "shy", "chatty", "mysterious", "booming", "whispering", "buzzing",
	"hushed", "talkative", "secretive", "thundering", "murmuring", "humming", "muted", "gossipy", "enigmatic", "roaring",
	// Materials
	"wooden", "metal", "plastic", "glass", "paper", "cloth", "leather", "rubber", "stone", "crystal",
	"cotton", "silk", "wool", "brick", "cement", "golden", "copper", "iron", "marble",
	"velvet", "linen", "denim", "ceramic", "concrete", "bronze", "aluminum", "steel", "granite", "jade",
	// Weather and seasons
	"sunny", "rainy", "snowy", "windy", "warm", "cold", "hot", "cool", "spring", "summer", "autumn", "winter",
	"cloudy", "stormy", "foggy", "breezy", "mild", "freezing", "scorching", "chilly", "blossom", "beach", "harvest", "frosty",
	// Time of day
	"morning", "noon", "evening", "night", "dawn", "dusk", "midnight", "sunrise", "sunset", "daybreak",
	"afternoon", "twilight", "bedtime", "wakeup", "lunchtime", "dinnertime", "playtime", "naptime", "storytime", "dreamtime",
	// Textures
	"smooth", "rough", "soft", "hard", "fuzzy", "slippery", "bumpy", "fluffy", "spiky", "slimy",
	"silky", "coarse", "gentle", "solid", "woolly", "greasy", "lumpy", "downy", "sharp", "gooey",
	"velvety", "scratchy", "tender", "rigid", "furry", "oily", "feathery", "pointy", "sticky",
	// Patterns
	"striped", "spotted", "dotted", "wavy", "zigzag", "curly", "straight", "swirly", "checkered", "polka",
	"lined", "speckled", "flecked", "curved", "jagged", "winding", "bent", "twisted", "plaid", "dashed",
	"banded", "mottled", "sprinkled", "meandering", "serrated", "coiled", "crooked", "spiraled", "tartan",
	// Actions
	"sleeping", "dancing", "singing", "jumping", "running", "flying", "swimming", "climbing", "digging", "hiding",
	"playing", "reading", "drawing", "building", "cooking", "cleaning", "gardening", "fishing", "camping", "exploring",
	// Positions
	"top", "bottom", "left", "right", "center", "middle", "front", "back", "inside", "outside",
	"upstairs", "downstairs", "up", "down", "near", "far", "close", "distant", "high", "low",
	"short", "tall", "wide", "narrow", "long",
	// Qualities
	"magical", "ordinary", "special", "normal", "unique", "common", "rare", "unusual", "strange", "familiar", "bizarre",
	"wonderful", "boring", "amazing", "plain", "fantastic", "simple", "incredible", "basic", "marvelous", "regular",
	// Food
	"sweet", "sour", "salty", "spicy", "fresh", "stale", "juicy", "dry", "crunchy", "chewy",
	"delicious", "yucky", "tasty", "gross", "yummy", "scrumptious", "mouthwatering", "cheesy", "savory", "tangy", "bitter",
	// Light
	"bright", "dark", "shiny", "dull", "glowing", "dim", "sparkly", "gloomy", "radiant", "shadowy", "radioactive",
	"luminous", "murky", "twinkling", "overcast", "brilliant", "dusky", "glittering", "somber", "dazzling", "obscure",
}

// Simple animals that are easy to recognize.
var animals = []string{
	// Pets and farm animals
	"cat", "dog", "bird", "fish", "cow", "pig", "sheep", "horse", "duck", "chicken",
	"rabbit", "mouse", "goat", "donkey", "turkey", "goose", "pony", "hamster", "calf",
	// Younglings
	"puppy", "kitten", "duckling", "chick", "piglet", "lamb", "foal", "colt",
	"bunny", "baby", "cub", "fawn", "pup", "joey", "tadpole",
	// Zoo and wild animals
	"bear", "lion", "tiger", "elephant", "monkey", "giraffe", "zebra", "kangaroo", "panda",
	"hippo", "rhino", "crocodile", "alligator", "camel", "gorilla", "leopard", "cheetah", "koala",
	// Woodland animals
	"fox", "wolf", "deer", "squirrel", "raccoon", "skunk", "beaver", "otter", "hedgehog", "moose",
	// Water animals
	"seal", "whale", "dolphin", "shark", "octopus", "crab", "lobster", "starfish", "jellyfish", "clam", "shrimp", "eel", "seahorse",
	// Reptiles and amphibians
	"frog", "turtle", "snake", "lizard", "gecko", "newt", "toad",
	// Insects
	"bee", "butterfly", "spider", "ant", "ladybug", "dragonfly", "grasshopper", "firefly", "beetle", "worm", "bug", "moth", "caterpillar",
	// Birds
	"owl", "eagle", "parrot", "flamingo", "peacock", "swan", "robin", "crow", "woodpecker", "pigeon", "sparrow", "finch", "hawk",
	// Arctic animals
	"walrus", "reindeer", "penguin", "polar", "orca",
	// Miscellaneous
	"bat", "mole", "platypus", "armadillo", "sloth", "meerkat", "lemur", "yak", "antelope", "buffalo", "ferret",
}
