package tools

var defaultContent = map[string]Content{
	Presentation: {
		Description: `Concise personal introduction. Answers "Who are you?" or "Tell me about yourself".`,
		Text:        "I'm Ahmad Yar, a 20-year-old automation nerd from Lahore who believes n8n flows should come with a seatbelt. I build AI-driven systems that work *while I sleep* 😎. If it's automatable, I'll automate it, sometimes even my breakfast reminders. Let's make the future a bit smarter (and lazier).",
	},
	Resume: {
		Description: "Resume / CV summary with a link to the full document.",
		Text: `Here's my resume in a nutshell 📄

- **Ahmad Yar**, Cloud Data Engineer & AI Automation Specialist, Lahore, Pakistan
- **Education**: Computer Science at PIASS, Google Cloud Data Analyst certificate
- **Certifications**: Google Cloud Data Analyst, Make.com Expert (2024)
- **Experience**: freelance automation & data engineer on Upwork and Fiverr since 2025, Shopify assistant since 2023
- **Highlights**: Ringba call tracking pipeline on AWS (Lambda, Glue, RDS, Power BI), lending insights dashboard in Looker, voice-based table booking agent with Vapi.ai

Want the full PDF? Just ask for my contact and I'll send it over.`,
	},
	Contact: {
		Description: "How to get in touch: email, phone and LinkedIn.",
		Text: `Let's talk! 📬

- **Email**: ahamdjin34@gmail.com
- **Phone**: +92 326-6255946
- **LinkedIn**: https://www.linkedin.com/in/ahamd-yar/
- **Handle**: @AhmadYar

I usually answer within a day. Don't be shy, break the ice!`,
	},
	Skills: {
		Description: "Technical and soft skills grouped by category.",
		Text: `Here's my toolbox 🧰

- **Data Engineering & Cloud**: AWS (Lambda, S3, RDS, Glue, EventBridge), Google Cloud (BigQuery), Azure, Redshift, Snowflake
- **Programming**: Python, SQL, Shell scripting, JavaScript
- **ETL & Orchestration**: AWS Glue, Apache Airflow, n8n, Make.com, Zapier
- **Databases**: PostgreSQL, MySQL, MongoDB, AWS RDS, BigQuery
- **Analysis**: Apache Spark, Pandas, NumPy, Jupyter, Excel
- **BI**: Power BI, Tableau, Google Data Studio
- **DevOps**: Git, GitHub, Docker
- **AI Automation**: n8n expert, Make.com, API integration, voice automation with Vapi.ai
- **Soft skills**: communication, problem-solving, adaptability, learning agility, teamwork, creativity, focus`,
	},
	Projects: {
		Description: "List of projects and anything related to them.",
		Text:        "Here are all the projects I've built (above)! Ringba call tracking automation, lending insights for TheLook Fintech, and a voice-based table booking agent. Don't hesitate to ask me more about them!",
	},
	Experience: {
		Description: "Timeline of the journey from Shopify assistant to automation and data specialist.",
		Text: `Here's my experience journey in a nutshell:

🛍️ In 2023, I started as a Shopify Assistant doing product research, managing listings, and occasionally breaking themes.

📚 Then came my self-taught phase: cloud data analytics, Python, SQL, and convincing JSON to behave. Built dashboards that were both beautiful and actually worked.

📜 In 2024, I earned two certificates, Google Cloud Data Analyst and Make.com Expert.

🚀 In 2025, I launched into freelancing. My first client got a complete Ringba call tracking pipeline with automation and analytics.`,
	},
	Internship: {
		Description: "The internship I'm looking for: dates, location, focus and how to reach me.",
		Text: `Here's what I'm looking for 👇

- 📅 **Duration**: 6-month internship starting **September 2025**
- 🌍 **Location**: preferably **Remote**, or onsite in **Lahore** or anywhere in **Pakistan**
- 🧠 **Focus Areas**: AI Automation, Shopify Development, Prompt Engineering, API Integration, Data Pipelines
- ⚙️ **Tech Highlights**: automation pipelines with **n8n** and **Make.com**, AI agents with **Vapi.ai**, **OpenAI** and **Ollama**, Shopify automation, **Power BI** dashboards

📎 Ask for my skills or contact to learn more.

🚀 Let's automate, analyze, and ship useful systems together.`,
	},
	Sports: {
		Description: "Gaming and sports highlights.",
		Text:        "Here are my top gaming highlights: headshots in Free Fire, epic blunders in Chess, and those 'did-that-really-just-happen?' squad moments. Ready to relive the fun?",
	},
	Crazy: {
		Description: "The craziest things I've done, trials and mistakes included.",
		Text:        "Above lies my glorious trail of trials, featuring epic bugs, questionable decisions, and a front-row seat to my mistakes (yes, I took notes). Scroll on if you're into character-building crashes and breakthrough fixes.",
	},
}
