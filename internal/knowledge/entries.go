package knowledge

// PortfolioEntries is the authored knowledge base. Adding a topic only takes
// a new (category, content) pair; the embedding is computed at startup.
func PortfolioEntries() []Entry {
	return []Entry{
		{
			Category: "about",
			Content:  "I am Aaryan Gole, a passionate AI & Data Science student at VCET with hands-on experience in building intelligent applications and scalable solutions. I have expertise in machine learning, backend development, and retrieval-based chatbots.",
		},
		{
			Category: "skills_ml",
			Content:  "My AI/ML skills include: TensorFlow, RNN & Transformers, RAG models, NLP, and Computer Vision. I work with deep learning frameworks and build production-grade AI systems.",
		},
		{
			Category: "skills_backend",
			Content:  "Backend development skills: Flask, Django, Go, Python, SQL, and RESTful APIs. I design scalable systems and handle database management with MongoDB and relational databases.",
		},
		{
			Category: "skills_frontend",
			Content:  "Frontend skills: JavaScript, ReactJS, HTML/CSS, and responsive design. I build interactive user interfaces and web applications.",
		},
		{
			Category: "tools",
			Content:  "Tools and technologies: Postman for API testing, Figma for design, Power BI for data visualization, Docker for containerization, and Git for version control.",
		},
		{
			Category: "experience_citius",
			Content:  "I worked as an Academic Intern at Citius Cloud from June 2024 to July 2024. I implemented RNN, Transformers, and RAG models in TensorFlow to build a chatbot trained on web-scraped data, gaining experience in production-ready AI systems.",
		},
		{
			Category: "education",
			Content:  "I am pursuing a Bachelor of Engineering in AI & Data Science at VCET, Vasai with a current GPA of 8.07. I have completed AISSCE (CBSE XII) with 74% in Science stream and AISSE (CBSE X) with 94.2%.",
		},
		{
			Category: "certifications",
			Content:  "My certifications include: Fundamentals of Machine Learning from Microsoft Learn, Data Analytics Program from Godrej Infotech Ltd., and MLOps with Data Version Control from Infosys Springboard.",
		},
		{
			Category: "project_lawpal",
			Content:  "LawPal is a legal chatbot with voice assistant built using a Flask backend with RAG architecture. I implemented semantic legal search and voice-enabled navigation to simplify access to complex legal documents for non-technical users.",
		},
		{
			Category: "project_elevatr",
			Content:  "Elevatr is an AI-driven resume analyzer and ATS-friendly resume builder. It evaluates resumes against ATS criteria using NLP and suggests improvements. Users can generate optimized, ATS-friendly resumes using curated templates.",
		},
		{
			Category: "project_finslash",
			Content:  "FinSlash is an AI-powered loan approval dashboard using machine learning. I implemented exploratory data analysis and logistic regression models with Streamlit to make loan decisions faster, smarter, and more transparent.",
		},
		{
			Category: "project_rento",
			Content:  "Rento is a Django-based web application for renting engineering tools. It features user authentication, model relationships, e-commerce cart management, and order handling, demonstrating full-stack development skills.",
		},
		{
			Category: "project_cinesleuth",
			Content:  "CineSLEUTH is an intelligent movie recommendation system combining TF-IDF vectorization, cosine similarity, fuzzy matching, and Apriori-based collaborative filtering for accurate recommendations.",
		},
		{
			Category: "project_drivesense",
			Content:  "DriveSense is an AI-powered driver wellness system monitoring facial cues and eye movements using deep learning and OpenCV to detect fatigue, stress, or distress with real-time interventions.",
		},
		{
			Category: "contact",
			Content:  "You can reach me through LinkedIn at linkedin.com/in/aaryan-gole, GitHub at github.com/AaryanGole26, or email at goleaaryan7@gmail.com.",
		},
	}
}
