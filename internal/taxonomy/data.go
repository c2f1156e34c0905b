package taxonomy

// Canonical holds the 51-effect taxonomy: 20 positive, 12 negative,
// 19 medical. Names and synonyms are already in normalized (lowercase,
// hyphenated) form.
var Canonical = []Effect{
	// positive (20)
	{
		Name:     "relaxed",
		Category: "positive",
		Description: "Full-body tension relief mediated by CB1 activation in the central " +
			"amygdala and GABAergic interneurons, reducing sympathetic nervous " +
			"system output.",
		Synonyms:        []string{"relaxing", "chill", "chilled", "mellow", "calm-body", "soothing"},
		ReceptorPathway: "CB1, GABA-A",
	},
	{
		Name:     "euphoric",
		Category: "positive",
		Description: "Intense well-being and pleasure driven by CB1-mediated dopamine " +
			"release in the mesolimbic pathway (nucleus accumbens and VTA).",
		Synonyms:        []string{"euphoria", "blissful", "bliss", "elated"},
		ReceptorPathway: "CB1, dopamine D2",
	},
	{
		Name:     "happy",
		Category: "positive",
		Description: "Elevated mood linked to serotonergic modulation via 5-HT1A partial " +
			"agonism and CB1-mediated anandamide elevation in prefrontal cortex.",
		Synonyms:        []string{"cheerful", "joyful", "good-mood", "positive-mood"},
		ReceptorPathway: "CB1, 5-HT1A",
	},
	{
		Name:     "creative",
		Category: "positive",
		Description: "Enhanced divergent thinking associated with increased cerebral blood " +
			"flow to the frontal lobe and CB1-mediated disinhibition of associative " +
			"networks.",
		Synonyms:        []string{"creativity", "inspired", "imaginative", "artistic"},
		ReceptorPathway: "CB1, dopamine D2",
	},
	{
		Name:     "energetic",
		Category: "positive",
		Description: "Increased physical and mental vitality through noradrenergic activation " +
			"and TRPV1-mediated peripheral stimulation, often associated with " +
			"pinene and limonene terpene profiles.",
		Synonyms:        []string{"energy", "energized", "invigorated", "stimulated", "active"},
		ReceptorPathway: "CB1, TRPV1, norepinephrine",
	},
	{
		Name:     "focused",
		Category: "positive",
		Description: "Improved concentration and attentional control via modulation of " +
			"prefrontal cortex dopamine and norepinephrine signaling, with " +
			"alpha-pinene terpene contribution to acetylcholinesterase inhibition.",
		Synonyms:        []string{"focus", "attentive", "concentrated", "alert", "clear-headed"},
		ReceptorPathway: "CB1, dopamine D1, AChE",
	},
	{
		Name:     "uplifted",
		Category: "positive",
		Description: "Mood elevation and optimism through serotonin and dopamine pathway " +
			"modulation, often associated with limonene-dominant terpene profiles.",
		Synonyms:        []string{"uplifting", "elevated", "lifted", "bright"},
		ReceptorPathway: "CB1, 5-HT1A, dopamine",
	},
	{
		Name:     "giggly",
		Category: "positive",
		Description: "Lowered laughter threshold through CB1-mediated disinhibition of " +
			"social processing circuits in the temporal and prefrontal cortex.",
		Synonyms:        []string{"laughing", "laughy", "funny", "giddy"},
		ReceptorPathway: "CB1, dopamine D2",
	},
	{
		Name:     "talkative",
		Category: "positive",
		Description: "Enhanced social communication via CB1 modulation of dopaminergic " +
			"pathways in Broca's area and reduced social anxiety through " +
			"amygdala suppression.",
		Synonyms:        []string{"chatty", "social", "sociable", "verbose"},
		ReceptorPathway: "CB1, dopamine, GABA-A",
	},
	{
		Name:     "tingly",
		Category: "positive",
		Description: "Peripheral sensory stimulation from TRPV1 and CB1 receptor activation " +
			"on sensory neurons, producing pleasant paresthesia throughout the body.",
		Synonyms:        []string{"tingling", "pins-and-needles", "buzzy", "vibrating"},
		ReceptorPathway: "TRPV1, CB1, CB2",
	},
	{
		Name:     "aroused",
		Category: "positive",
		Description: "Heightened sexual arousal through CB1-mediated vasodilation, oxytocin " +
			"release, and enhanced tactile sensitivity via peripheral CB1/TRPV1 " +
			"activation.",
		Synonyms:        []string{"horny", "turned-on", "sensual", "lustful"},
		ReceptorPathway: "CB1, TRPV1, oxytocin",
	},
	{
		Name:     "hungry",
		Category: "positive",
		Description: "Appetite stimulation (the 'munchies') driven by CB1 activation in " +
			"the hypothalamus, enhanced olfactory sensitivity, and ghrelin release " +
			"from the stomach.",
		Synonyms:        []string{"munchies", "appetite", "snacky", "famished"},
		ReceptorPathway: "CB1, ghrelin, hypothalamic",
	},
	{
		Name:     "sleepy",
		Category: "positive",
		Description: "Sedation and drowsiness mediated by CBN/THC synergy on CB1 receptors, " +
			"myrcene terpene potentiation, and GABAergic enhancement promoting " +
			"sleep onset.",
		Synonyms:        []string{"drowsy", "sedated", "tired", "sleep-inducing", "knocked-out"},
		ReceptorPathway: "CB1, GABA-A, adenosine",
	},
	{
		Name:     "calm",
		Category: "positive",
		Description: "Mental tranquility and reduced racing thoughts via CB1-mediated " +
			"suppression of default mode network overactivity and anxiolytic " +
			"5-HT1A partial agonism.",
		Synonyms:        []string{"calming", "peaceful", "serene", "tranquil", "zen"},
		ReceptorPathway: "CB1, 5-HT1A, GABA-A",
	},
	{
		Name:     "motivated",
		Category: "positive",
		Description: "Enhanced goal-directed behavior through low-dose CB1 modulation of " +
			"dopamine release in the prefrontal cortex and nucleus accumbens, " +
			"increasing reward anticipation.",
		Synonyms:        []string{"driven", "ambitious", "productive", "determined"},
		ReceptorPathway: "CB1, dopamine D1, D2",
	},
	{
		Name:     "meditative",
		Category: "positive",
		Description: "Enhanced introspective and mindful states through CB1-mediated " +
			"default mode network modulation and 5-HT1A-mediated reduction of " +
			"mental chatter.",
		Synonyms:        []string{"contemplative", "introspective", "mindful", "reflective"},
		ReceptorPathway: "CB1, 5-HT1A",
	},
	{
		Name:     "body-high",
		Category: "positive",
		Description: "Diffuse physical euphoria from CB1 and CB2 activation on peripheral " +
			"sensory neurons combined with TRPV1-mediated warmth and muscle relaxation.",
		Synonyms:        []string{"body-buzz", "body-euphoria", "physical-high", "body-stone"},
		ReceptorPathway: "CB1, CB2, TRPV1",
	},
	{
		Name:     "head-high",
		Category: "positive",
		Description: "Cerebral psychoactive effects predominantly from CB1 activation in " +
			"cortical regions, producing altered perception and thought patterns " +
			"without heavy body sedation.",
		Synonyms:        []string{"cerebral", "heady", "mental-high", "brain-buzz"},
		ReceptorPathway: "CB1, dopamine, serotonin",
	},
	{
		Name:     "spacey",
		Category: "positive",
		Description: "Mild dissociation and dreamlike cognition from CB1-mediated disruption " +
			"of hippocampal theta rhythms and altered temporal perception in the " +
			"prefrontal cortex.",
		Synonyms:        []string{"spaced-out", "floaty", "dreamy", "zoned-out", "otherworldly"},
		ReceptorPathway: "CB1, hippocampal",
	},
	{
		Name:     "mouth-watering",
		Category: "positive",
		Description: "Increased salivation and taste enhancement driven by CB1 activation " +
			"in gustatory cortex and parasympathetic stimulation of salivary glands, " +
			"distinct from appetite stimulation.",
		Synonyms:        []string{"salivating", "taste-enhanced", "flavorful"},
		ReceptorPathway: "CB1, parasympathetic",
	},

	// negative (12)
	{
		Name:     "dry-mouth",
		Category: "negative",
		Description: "Reduced salivation (xerostomia) caused by CB1 and CB2 receptor " +
			"activation in submandibular gland parasympathetic ganglia, inhibiting " +
			"acetylcholine-mediated saliva production.",
		Synonyms:        []string{"cottonmouth", "thirsty", "dry-throat", "parched"},
		ReceptorPathway: "CB1, CB2, muscarinic",
	},
	{
		Name:     "dry-eyes",
		Category: "negative",
		Description: "Decreased tear production from CB1-mediated inhibition of lacrimal " +
			"gland secretion and reduced aqueous humor outflow causing intraocular " +
			"pressure changes.",
		Synonyms:        []string{"red-eyes", "bloodshot", "itchy-eyes", "irritated-eyes"},
		ReceptorPathway: "CB1, muscarinic",
	},
	{
		Name:     "dizzy",
		Category: "negative",
		Description: "Vestibular disruption and orthostatic hypotension from CB1-mediated " +
			"vasodilation and reduced cerebellar coordination, particularly at " +
			"higher doses.",
		Synonyms:        []string{"dizziness", "lightheaded", "vertigo", "unsteady", "woozy"},
		ReceptorPathway: "CB1, cardiovascular",
	},
	{
		Name:     "paranoid",
		Category: "negative",
		Description: "Excessive threat detection from CB1 overstimulation of the amygdala " +
			"and hippocampus, overwhelming endocannabinoid buffering and triggering " +
			"hypervigilant pattern matching.",
		Synonyms:        []string{"paranoia", "suspicious", "mistrustful", "on-edge"},
		ReceptorPathway: "CB1, amygdala, norepinephrine",
	},
	{
		Name:     "anxious",
		Category: "negative",
		Description: "Heightened anxiety from biphasic CB1 response at high doses, " +
			"excessive amygdala activation, cortisol release, and disruption of " +
			"the HPA axis stress response.",
		Synonyms:        []string{"anxiety", "nervous", "worried", "panicky", "uneasy", "restless"},
		ReceptorPathway: "CB1, HPA axis, norepinephrine",
	},
	{
		Name:     "headache",
		Category: "negative",
		Description: "Cephalgia potentially from rebound vasodilation, dehydration, or " +
			"terpene sensitivity, with CB1-mediated changes in trigeminal nerve " +
			"signaling.",
		Synonyms:        []string{"head-pain", "migraine-like", "head-pressure"},
		ReceptorPathway: "CB1, TRPV1, trigeminal",
	},
	{
		Name:     "nauseous",
		Category: "negative",
		Description: "Dose-dependent emetic response from CB1 activation in the area " +
			"postrema (chemoreceptor trigger zone) and vagal afferents, " +
			"paradoxically opposite to antiemetic effects at lower doses.",
		Synonyms:        []string{"nausea", "queasy", "sick", "stomach-upset", "vomiting"},
		ReceptorPathway: "CB1, 5-HT3, vagal",
	},
	{
		Name:     "rapid-heartbeat",
		Category: "negative",
		Description: "Tachycardia from CB1-mediated sympathetic activation and vagal " +
			"inhibition, increasing heart rate by 20-50% acutely, particularly " +
			"in naive users.",
		Synonyms:        []string{"tachycardia", "racing-heart", "heart-pounding", "palpitations"},
		ReceptorPathway: "CB1, sympathetic, vagal",
	},
	{
		Name:     "couch-lock",
		Category: "negative",
		Description: "Extreme sedation and physical immobility from high-dose CB1 " +
			"activation combined with myrcene terpene potentiation of GABAergic " +
			"inhibition in motor circuits.",
		Synonyms:        []string{"couch-locked", "immobile", "stuck", "body-lock", "glued"},
		ReceptorPathway: "CB1, GABA-A, motor cortex",
	},
	{
		Name:     "disoriented",
		Category: "negative",
		Description: "Spatial and temporal confusion from CB1-mediated disruption of " +
			"hippocampal place cells and entorhinal grid cells, impairing " +
			"navigation and time perception.",
		Synonyms:        []string{"confused", "disorientation", "lost", "bewildered"},
		ReceptorPathway: "CB1, hippocampal",
	},
	{
		Name:     "fatigued",
		Category: "negative",
		Description: "Post-use exhaustion from adenosine accumulation following CB1-mediated " +
			"dopamine depletion and disrupted sleep architecture during cannabis-" +
			"induced sleep.",
		Synonyms:        []string{"fatigue", "lethargic", "drained", "wiped-out", "burnt-out"},
		ReceptorPathway: "CB1, adenosine, dopamine",
	},
	{
		Name:     "irritable",
		Category: "negative",
		Description: "Increased irritability from endocannabinoid system rebound after " +
			"acute use, with reduced GABAergic tone and heightened amygdala " +
			"reactivity to negative stimuli.",
		Synonyms:        []string{"irritability", "cranky", "agitated", "short-tempered", "grumpy"},
		ReceptorPathway: "CB1, GABA-A, amygdala",
	},

	// medical (19)
	{
		Name:     "pain",
		Category: "medical",
		Description: "Analgesic relief through CB1/CB2-mediated inhibition of nociceptive " +
			"signaling in dorsal horn, descending pain modulation, and peripheral " +
			"anti-inflammatory action via TRPV1 desensitization.",
		Synonyms:        []string{"pain-relief", "analgesic", "anti-pain", "chronic-pain", "pain-management"},
		ReceptorPathway: "CB1, CB2, TRPV1, mu-opioid",
	},
	{
		Name:     "stress",
		Category: "medical",
		Description: "Stress reduction through CB1-mediated suppression of HPA axis " +
			"cortisol output and amygdala fear response, with anxiolytic " +
			"contribution from 5-HT1A partial agonism.",
		Synonyms:        []string{"stress-relief", "anti-stress", "destress", "tension-relief"},
		ReceptorPathway: "CB1, 5-HT1A, HPA axis",
	},
	{
		Name:     "anxiety",
		Category: "medical",
		Description: "Anxiolytic effects at low-moderate doses via CB1-mediated " +
			"enhancement of GABAergic inhibition in basolateral amygdala and " +
			"CBD-mediated 5-HT1A partial agonism.",
		Synonyms:        []string{"anxiety-relief", "anti-anxiety", "anxiolytic", "calm-nerves"},
		ReceptorPathway: "CB1, 5-HT1A, GABA-A",
	},
	{
		Name:     "depression",
		Category: "medical",
		Description: "Antidepressant-like effects from rapid CB1-mediated enhancement of " +
			"serotonergic and dopaminergic neurotransmission, with endocannabinoid " +
			"system restoration of hedonic tone.",
		Synonyms:        []string{"depression-relief", "antidepressant", "mood-disorder", "low-mood"},
		ReceptorPathway: "CB1, 5-HT1A, dopamine",
	},
	{
		Name:     "insomnia",
		Category: "medical",
		Description: "Sleep-promoting effects through CBN/THC CB1 agonism increasing " +
			"adenosine signaling, myrcene-mediated GABA-A potentiation, and " +
			"reduction of REM sleep latency.",
		Synonyms:        []string{"sleep-aid", "insomnia-relief", "sleep-disorder", "sleeplessness"},
		ReceptorPathway: "CB1, GABA-A, adenosine",
	},
	{
		Name:     "nausea-relief",
		Category: "medical",
		Description: "Antiemetic action through CB1 agonism in the dorsal vagal complex " +
			"and 5-HT3 receptor antagonism, particularly effective for " +
			"chemotherapy-induced nausea (CINV).",
		Synonyms:        []string{"anti-nausea", "antiemetic", "anti-vomiting", "stomach-settling"},
		ReceptorPathway: "CB1, 5-HT3, vagal",
	},
	{
		Name:     "appetite-loss",
		Category: "medical",
		Description: "Appetite stimulation for cachexia and wasting syndromes through " +
			"CB1-mediated ghrelin release and hypothalamic feeding circuit " +
			"activation, countering appetite loss.",
		Synonyms:        []string{"appetite-stimulant", "cachexia", "wasting", "anorexia-treatment"},
		ReceptorPathway: "CB1, ghrelin, hypothalamic",
	},
	{
		Name:     "inflammation",
		Category: "medical",
		Description: "Anti-inflammatory action through CB2-mediated immune cell modulation, " +
			"inhibition of NF-kB pro-inflammatory signaling, and reduction of " +
			"TNF-alpha, IL-6, and other cytokines.",
		Synonyms:        []string{"anti-inflammatory", "inflammation-relief", "swelling", "inflammatory"},
		ReceptorPathway: "CB2, PPARgamma, NF-kB",
	},
	{
		Name:     "muscle-spasms",
		Category: "medical",
		Description: "Antispasmodic relief through CB1-mediated inhibition of excitatory " +
			"neurotransmission at neuromuscular junctions and central motor " +
			"circuit regulation, relevant to MS and spasticity.",
		Synonyms:        []string{"spasticity", "muscle-relaxant", "cramps", "spasm-relief", "muscle-tension"},
		ReceptorPathway: "CB1, GABA-A, glycine",
	},
	{
		Name:     "seizures",
		Category: "medical",
		Description: "Anticonvulsant effects primarily from CBD-mediated GPR55 antagonism, " +
			"TRPV1 desensitization, and enhanced adenosine signaling reducing " +
			"neuronal hyperexcitability (FDA-approved for Dravet/Lennox-Gastaut).",
		Synonyms:        []string{"epilepsy", "anticonvulsant", "seizure-relief", "convulsions"},
		ReceptorPathway: "GPR55, TRPV1, adenosine, 5-HT1A",
	},
	{
		Name:     "ptsd",
		Category: "medical",
		Description: "PTSD symptom management through CB1-mediated fear extinction in the " +
			"amygdala-prefrontal circuit, disruption of traumatic memory " +
			"reconsolidation, and nightmare suppression.",
		Synonyms:        []string{"trauma", "ptsd-relief", "post-traumatic", "flashbacks"},
		ReceptorPathway: "CB1, amygdala, hippocampal",
	},
	{
		Name:     "migraines",
		Category: "medical",
		Description: "Migraine relief through CB1-mediated inhibition of trigeminal " +
			"nociception, serotonergic modulation of cortical spreading depression, " +
			"and TRPV1-mediated CGRP release reduction.",
		Synonyms:        []string{"migraine-relief", "headache-relief", "cluster-headaches"},
		ReceptorPathway: "CB1, TRPV1, 5-HT1A, trigeminal",
	},
	{
		Name:     "fatigue-medical",
		Category: "medical",
		Description: "Management of chronic fatigue through low-dose CB1-mediated " +
			"dopaminergic stimulation, improved sleep quality, and reduced " +
			"neuroinflammation contributing to central fatigue.",
		Synonyms:        []string{"chronic-fatigue", "cfs", "fatigue-relief", "energy-restoration"},
		ReceptorPathway: "CB1, dopamine, adenosine",
	},
	{
		Name:     "eye-pressure",
		Category: "medical",
		Description: "Intraocular pressure reduction through CB1-mediated increase in " +
			"aqueous humor outflow and decreased production via ciliary body " +
			"receptor activation, relevant to glaucoma treatment.",
		Synonyms:        []string{"glaucoma", "iop-reduction", "intraocular-pressure", "eye-pressure-relief"},
		ReceptorPathway: "CB1, ciliary body",
	},
	{
		Name:     "arthritis",
		Category: "medical",
		Description: "Joint pain and inflammation relief through CB2-mediated suppression " +
			"of synovial inflammation, CB1 analgesia in joint nociceptors, and " +
			"TRPV1 desensitization in arthritic joints.",
		Synonyms:        []string{"joint-pain", "rheumatoid", "osteoarthritis", "joint-inflammation"},
		ReceptorPathway: "CB1, CB2, TRPV1, PPARgamma",
	},
	{
		Name:     "fibromyalgia",
		Category: "medical",
		Description: "Central sensitization management through endocannabinoid deficiency " +
			"correction, CB1-mediated descending pain inhibition, and improved " +
			"sleep quality addressing fibromyalgia's multifactorial pathology.",
		Synonyms:        []string{"fibro", "fibromyalgia-relief", "central-sensitization"},
		ReceptorPathway: "CB1, CB2, 5-HT1A, TRPV1",
	},
	{
		Name:     "adhd",
		Category: "medical",
		Description: "Attention and impulse regulation through CB1-mediated modulation of " +
			"prefrontal dopamine signaling, with potential normalization of " +
			"dopamine transporter function in ADHD patients.",
		Synonyms:        []string{"add", "attention-deficit", "hyperactivity", "focus-disorder"},
		ReceptorPathway: "CB1, dopamine D1, D2, norepinephrine",
	},
	{
		Name:     "gastrointestinal",
		Category: "medical",
		Description: "GI symptom relief through CB1/CB2 modulation of enteric nervous " +
			"system motility, reduction of intestinal inflammation via CB2, " +
			"and visceral pain suppression relevant to IBS and Crohn's disease.",
		Synonyms:        []string{"ibs", "crohns", "gi-relief", "digestive", "stomach-issues", "colitis"},
		ReceptorPathway: "CB1, CB2, TRPV1, enteric",
	},
	{
		Name:     "bipolar",
		Category: "medical",
		Description: "Mood stabilization through endocannabinoid system regulation of " +
			"glutamate/GABA balance, CB1-mediated dampening of manic dopamine " +
			"surges, and neuroprotective effects during mood episodes.",
		Synonyms:        []string{"bipolar-disorder", "mood-stabilizer", "mania", "manic-depression"},
		ReceptorPathway: "CB1, GABA-A, glutamate, dopamine",
	},
}
