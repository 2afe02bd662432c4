package seeder

import "xrnode/internal/domain/profile"

// DefaultViewerID is the attendee the demo kiosk acts as when no badge is
// checked in.
const DefaultViewerID = "p003"

type Participant struct {
	Profile     profile.Profile
	CheckinCode string
}

func Participants() []Participant {
	return []Participant{
		{
			CheckinCode: "sabina-2025",
			Profile: profile.Profile{
				ID:              "p001",
				Name:            "Sabina Chen",
				Role:            "Project Manager",
				Company:         "Hired",
				Bio:             "Navigating the intersection of economic trends and AR data visualization.",
				Interests:       []string{"Economic Indicators", "Data Storytelling", "AR Dashboards"},
				Skills:          []string{"Project Management", "Agile", "Data Analysis", "Team Leadership"},
				ImageURL:        "https://picsum.photos/400/500?random=1",
				LinkedInURL:     "https://linkedin.com/in/sabinachen",
				Location:        "San Francisco, CA",
				ExperienceYears: profile.Years(8),
			},
		},
		{
			CheckinCode: "vong-2025",
			Profile: profile.Profile{
				ID:              "p002",
				Name:            "Vong Patel",
				Role:            "Data Strategist",
				Company:         "Minstar",
				Bio:             "Looking for partners to build the next gen of coherent healthcare deliverables in VR.",
				Interests:       []string{"Healthcare Data", "Virtual Collaboration", "Clean Sets"},
				Skills:          []string{"Data Strategy", "Healthcare IT", "VR Development", "Python"},
				ImageURL:        "https://picsum.photos/400/500?random=2",
				LinkedInURL:     "https://linkedin.com/in/vongpatel",
				Location:        "Austin, TX",
				ExperienceYears: profile.Years(6),
			},
		},
		{
			CheckinCode: "marlaina-2025",
			Profile: profile.Profile{
				ID:              "p003",
				Name:            "Marlaina Rodriguez",
				Role:            "XR Developer",
				Company:         "Chamber of Commerce",
				Bio:             "Focusing on member marketing through immersive city experiences.",
				Interests:       []string{"Spatial Audio", "Digital Twins", "Civic Tech"},
				Skills:          []string{"WebXR", "Three.js", "React", "TypeScript", "Unity"},
				ImageURL:        "https://picsum.photos/400/500?random=3",
				LinkedInURL:     "https://linkedin.com/in/marlainarodriguez",
				Location:        "Denver, CO",
				ExperienceYears: profile.Years(5),
			},
		},
		{
			CheckinCode: "alex-2025",
			Profile: profile.Profile{
				ID:              "p004",
				Name:            "Alex Kim",
				Role:            "AI Engineer",
				Company:         "TechVentures",
				Bio:             "Building intelligent systems that understand human behavior in virtual spaces.",
				Interests:       []string{"Machine Learning", "Computer Vision", "XR Analytics"},
				Skills:          []string{"Python", "TensorFlow", "Computer Vision", "NLP"},
				ImageURL:        "https://picsum.photos/400/500?random=4",
				LinkedInURL:     "https://linkedin.com/in/alexkim",
				Location:        "Seattle, WA",
				ExperienceYears: profile.Years(4),
			},
		},
		{
			CheckinCode: "jordan-2025",
			Profile: profile.Profile{
				ID:              "p005",
				Name:            "Jordan Taylor",
				Role:            "UX Designer",
				Company:         "DesignLab",
				Bio:             "Crafting intuitive spatial interfaces that feel natural and accessible.",
				Interests:       []string{"Spatial UI", "Accessibility", "User Research"},
				Skills:          []string{"Figma", "Prototyping", "User Research", "Spatial Design"},
				ImageURL:        "https://picsum.photos/400/500?random=5",
				LinkedInURL:     "https://linkedin.com/in/jordantaylor",
				Location:        "Portland, OR",
				ExperienceYears: profile.Years(7),
			},
		},
		{
			CheckinCode: "deepak-2025",
			Profile: profile.Profile{
				ID:              "p006",
				Name:            "Deepak Sharma",
				Role:            "Full Stack Developer",
				Company:         "StartupXYZ",
				Bio:             "Passionate about building scalable web applications with immersive features.",
				Interests:       []string{"WebXR", "React", "Node.js", "Cloud Architecture"},
				Skills:          []string{"JavaScript", "React", "Node.js", "AWS", "WebXR"},
				ImageURL:        "https://picsum.photos/400/500?random=6",
				LinkedInURL:     "https://linkedin.com/in/deepaksharma",
				Location:        "New York, NY",
				ExperienceYears: profile.Years(6),
			},
		},
		{
			CheckinCode: "serena-2025",
			Profile: profile.Profile{
				ID:              "p007",
				Name:            "Serena Williams",
				Role:            "AI Researcher",
				Company:         "AI Labs",
				Bio:             "Researching AI-powered matching algorithms for social connections.",
				Interests:       []string{"Recommendation Systems", "Social Networks", "NLP"},
				Skills:          []string{"Machine Learning", "Python", "Research", "Data Science"},
				ImageURL:        "https://picsum.photos/400/500?random=7",
				LinkedInURL:     "https://linkedin.com/in/serenawilliams",
				Location:        "Boston, MA",
				ExperienceYears: profile.Years(5),
			},
		},
		{
			CheckinCode: "marcus-2025",
			Profile: profile.Profile{
				ID:              "p008",
				Name:            "Marcus Johnson",
				Role:            "3D Artist",
				Company:         "Creative Studios",
				Bio:             "Creating stunning 3D environments and characters for immersive experiences.",
				Interests:       []string{"3D Modeling", "Animation", "Virtual Production"},
				Skills:          []string{"Blender", "Maya", "Substance Painter", "Unity"},
				ImageURL:        "https://picsum.photos/400/500?random=8",
				LinkedInURL:     "https://linkedin.com/in/marcusjohnson",
				Location:        "Los Angeles, CA",
				ExperienceYears: profile.Years(8),
			},
		},
	}
}

func Profiles() []profile.Profile {
	ps := Participants()
	out := make([]profile.Profile, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Profile)
	}
	return out
}
